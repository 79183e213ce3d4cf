package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/bookhaven-backend/api/middleware"
	"github.com/angelmondragon/bookhaven-backend/api/responses"
	"github.com/angelmondragon/bookhaven-backend/api/validators"
	"github.com/angelmondragon/bookhaven-backend/internal/catalog"
	"github.com/angelmondragon/bookhaven-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/angelmondragon/bookhaven-backend/pkg/logger"
)

// VisitCounter counts landing page views per visitor session.
type VisitCounter interface {
	Hit(ctx context.Context, sessionID string) (int64, error)
}

type dashboardResponse struct {
	catalog.Counts
	NumVisits int64 `json:"num_visits"`
}

type bookDetailResponse struct {
	*catalog.BookDetail
	Inventory *inventory.BookInventoryDTO `json:"inventory,omitempty"`
}

// Dashboard renders the landing page counts plus the caller's visit number.
func Dashboard(svc catalog.Service, visits VisitCounter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || visits == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		counts, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		n, err := visits.Hit(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dashboardResponse{Counts: counts, NumVisits: n})
	}
}

func BookList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		books, err := svc.ListBooks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, books)
	}
}

// BookDetail returns one book with its copies. Stock and likes are attached
// when an inventory service is wired.
func BookDetail(svc catalog.Service, inv inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.GetBook(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := bookDetailResponse{BookDetail: book}
		if inv != nil {
			stock, err := inv.ForBook(r.Context(), id, optionalUserID(r))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			resp.Inventory = &stock
		}
		responses.WriteSuccess(w, resp)
	}
}

func AuthorList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		authors, err := svc.ListAuthors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, authors)
	}
}

func AuthorDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "authorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		author, err := svc.GetAuthor(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, author)
	}
}

// MyLoans lists the caller's borrowed copies, ten per page.
func MyLoans(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loans, err := svc.ListLoansByBorrower(r.Context(), userID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loans)
	}
}

func AllLoans(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		loans, err := svc.ListAllLoans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loans)
	}
}
