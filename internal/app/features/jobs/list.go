// internal/app/features/jobs/list.go
package jobs

import (
	"context"
	"net/http"

	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	"github.com/dalemusser/fresherlink/internal/app/system/apierr"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/app/system/paging"
	"github.com/dalemusser/fresherlink/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /jobs?type&location&search&page&limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := jobstore.ListFilter{
		Type:     query.Get(r, "type"),
		Location: query.Get(r, "location"),
		Search:   query.Get(r, "search"),
	}
	pg := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	jobs, total, err := h.jobs.List(ctx, f, pg)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	views, err := h.Views.Jobs(ctx, jobs)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, listResponse{
		Jobs:        views,
		TotalPages:  pg.TotalPages(total),
		CurrentPage: pg.Number,
		Total:       total,
	})
}

// ServeJob handles GET /jobs/{id}.
func (h *Handler) ServeJob(w http.ResponseWriter, r *http.Request) {
	id, err := inputval.ObjectIDParam(r, "id", jobstore.ErrNotFound.Error())
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	j, err := h.jobs.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	view, err := h.Views.Job(ctx, *j)
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, view)
}
