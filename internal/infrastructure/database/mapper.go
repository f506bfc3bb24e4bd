package database

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"eventpass/internal/domain/entities"
)

const eventColumns = `e.id, e.title, e.description, e.scheduled_at, e.location, e.created_by, e.announcement_ref, e.created_at`

// pgtypeTextToString returns t.String when Valid, else "".
func pgtypeTextToString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func stringToPgtypeText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var (
		e   entities.Event
		ref pgtype.Text
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.ScheduledAt, &e.Location, &e.CreatedBy, &ref, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.AnnouncementRef = pgtypeTextToString(ref)
	return &e, nil
}

func scanRegistrationWithEvent(row pgx.Row) (entities.RegistrationWithEvent, error) {
	var (
		r   entities.RegistrationWithEvent
		ref pgtype.Text
	)
	err := row.Scan(
		&r.UserID, &r.EventID, &r.RegisteredAt, &r.Status,
		&r.Event.ID, &r.Event.Title, &r.Event.Description, &r.Event.ScheduledAt,
		&r.Event.Location, &r.Event.CreatedBy, &ref, &r.Event.CreatedAt,
	)
	if err != nil {
		return r, err
	}
	r.Event.AnnouncementRef = pgtypeTextToString(ref)
	return r, nil
}
