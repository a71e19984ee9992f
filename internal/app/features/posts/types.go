// internal/app/features/posts/types.go
package posts

import (
	"strings"

	"github.com/dalemusser/fresherlink/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fresherlink/internal/app/system/viewdata"
	"github.com/dalemusser/fresherlink/internal/domain/models"
)

type feedResponse struct {
	Posts       []viewdata.PostView `json:"posts"`
	TotalPages  int64               `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	Total       int64               `json:"total"`
}

type mediaInput struct {
	URL  string `json:"url" validate:"required,url" label:"Media URL"`
	Type string `json:"type" validate:"required,mediatype" label:"Media type"`
}

type createInput struct {
	Caption string      `json:"caption" validate:"max=2000" label:"Caption"`
	Media   *mediaInput `json:"media" label:"Media"`
}

func (in createInput) media() *models.Media {
	if in.Media == nil {
		return nil
	}
	return &models.Media{URL: strings.TrimSpace(in.Media.URL), Type: in.Media.Type}
}

type captionInput struct {
	Caption string `json:"caption" validate:"max=2000" label:"Caption"`
}

type commentInput struct {
	Text string `json:"text" validate:"notblank,max=1000" label:"Comment"`
}

// clean strips markup and surrounding space from user text.
func clean(s string) string {
	return strings.TrimSpace(htmlsanitize.PlainText(s))
}
