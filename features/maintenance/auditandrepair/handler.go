package auditandrepair

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/shell"
)

const (
	logMsgAuditStarted    = "availability audit started"
	logMsgDriftRepaired   = "availability drift repaired"
	logMsgAuditCompleted  = "availability audit completed"
	logAttrBookID         = "book_id"
	logAttrExpectedCount  = "expected_available"
	logAttrObservedCount  = "observed_available"
	logAttrBooksAudited   = "books_audited"
	logAttrBooksRepaired  = "books_repaired"
	logAttrDurationMillis = "duration_ms"
)

// Correction records one repaired book: what the available counter held and
// what it was set to.
type Correction struct {
	BookID            uuid.UUID `json:"bookId"`
	ObservedAvailable int       `json:"observedAvailable"`
	ExpectedAvailable int       `json:"expectedAvailable"`
}

// Report summarizes one audit run.
type Report struct {
	StartedAt    time.Time    `json:"startedAt"`
	FinishedAt   time.Time    `json:"finishedAt"`
	BooksAudited int          `json:"booksAudited"`
	Corrections  []Correction `json:"corrections"`
}

// EntityStore defines the interface needed by the Handler for persistence.
type EntityStore interface {
	ListBookIDs(ctx context.Context) ([]uuid.UUID, error)
	ExecuteUnitOfWork(ctx context.Context, fn entitystore.UnitOfWorkFunc) error
}

// Handler walks the whole catalog and re-derives every book's available
// counter from its true active loan count, repairing drift where found.
//
// Each book is audited in its own unit of work, so a long audit never holds
// a transaction across the whole catalog and normal operations keep flowing.
// Running it on a consistent catalog changes nothing.
type Handler struct {
	store        EntityStore
	logger       shell.Logger
	retryOptions []shell.RetryOption
}

// Option configures a Handler.
type Option func(*Handler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *Handler) {
		h.retryOptions = opts
	}
}

// WithLogger sets the logger used to report audit progress.
func WithLogger(logger shell.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a new Handler with optional configuration.
func NewHandler(store EntityStore, opts ...Option) Handler {
	handler := Handler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle audits every book and repairs availability drift.
//
// Books deleted between listing and auditing are skipped. The returned
// report lists every correction made; an empty correction list means the
// catalog was already consistent.
func (h Handler) Handle(ctx context.Context) (Report, error) {
	report := Report{
		StartedAt:   time.Now().UTC(),
		Corrections: []Correction{},
	}

	h.logInfo(logMsgAuditStarted)

	bookIDs, listErr := h.store.ListBookIDs(ctx)
	if listErr != nil {
		return Report{}, listErr
	}

	for _, bookID := range bookIDs {
		correction, audited, auditErr := h.auditBook(ctx, bookID)
		if auditErr != nil {
			return Report{}, auditErr
		}

		if audited {
			report.BooksAudited++
		}

		if correction != nil {
			report.Corrections = append(report.Corrections, *correction)
		}
	}

	report.FinishedAt = time.Now().UTC()

	h.logInfo(logMsgAuditCompleted,
		logAttrBooksAudited, report.BooksAudited,
		logAttrBooksRepaired, len(report.Corrections),
		logAttrDurationMillis, report.FinishedAt.Sub(report.StartedAt).Milliseconds())

	return report, nil
}

// auditBook checks one book in its own retried unit of work.
// The bool result reports whether the book still existed.
func (h Handler) auditBook(ctx context.Context, bookID uuid.UUID) (*Correction, bool, error) {
	var correction *Correction
	var audited bool

	retryErr := shell.RetryOnConcurrencyConflict(ctx, func(retryCtx context.Context) error {
		correction = nil
		audited = false

		return h.store.ExecuteUnitOfWork(retryCtx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
			bookRecord, getBookErr := uow.GetBook(uowCtx, bookID)
			if errors.Is(getBookErr, entitystore.ErrNotFound) {
				return nil
			}
			if getBookErr != nil {
				return getBookErr
			}

			audited = true

			activeLoanCount, countErr := uow.GetActiveLoanCountForBook(uowCtx, bookID)
			if countErr != nil {
				return countErr
			}

			book := shell.BookFromRecord(bookRecord)
			repaired := book.RecomputeAvailability(activeLoanCount)

			if repaired.AvailableCopies == book.AvailableCopies {
				return nil
			}

			if updateErr := uow.UpdateBook(uowCtx, shell.BookRecordFromBook(repaired, bookRecord.Version)); updateErr != nil {
				return updateErr
			}

			correction = &Correction{
				BookID:            bookID,
				ObservedAvailable: book.AvailableCopies,
				ExpectedAvailable: repaired.AvailableCopies,
			}

			h.logWarn(logMsgDriftRepaired,
				logAttrBookID, bookID.String(),
				logAttrObservedCount, book.AvailableCopies,
				logAttrExpectedCount, repaired.AvailableCopies)

			return nil
		})
	}, h.retryOptions...)

	if retryErr != nil {
		return nil, false, retryErr
	}

	return correction, audited, nil
}

func (h Handler) logInfo(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Info(msg, args...)
	}
}

func (h Handler) logWarn(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Warn(msg, args...)
	}
}
