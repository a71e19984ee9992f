// internal/app/features/admin/stats.go
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/fresherlink/internal/app/store/audit"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/paging"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

type statsResponse struct {
	Students     int64         `json:"students"`
	Companies    int64         `json:"companies"`
	ActiveJobs   int64         `json:"activeJobs"`
	Applications int64         `json:"applications"`
	RecentUsers  []models.User `json:"recentUsers"`
}

// ServeStats handles GET /admin/stats.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		out statsResponse
		err error
	)
	if out.Students, err = h.users.CountByRole(ctx, models.RoleStudent); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if out.Companies, err = h.users.CountByRole(ctx, models.RoleCompany); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if out.ActiveJobs, err = h.jobs.CountActive(ctx); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if out.Applications, err = h.applications.Count(ctx); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if out.RecentUsers, err = h.users.Recent(ctx, recentSignups); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, out)
}

// ServeAudit handles GET /admin/audit?category&type&page&limit.
func (h *Handler) ServeAudit(w http.ResponseWriter, r *http.Request) {
	pg := paging.Parse(r)
	f := audit.QueryFilter{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "type"),
		Limit:     int64(pg.Limit),
		Offset:    pg.Skip(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.audits.Query(ctx, f)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, events)
}
