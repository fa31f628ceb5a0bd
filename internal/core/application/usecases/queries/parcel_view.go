package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartyView is a user reference resolved to contact attributes. Name, Email
// and Phone are empty when the user no longer exists.
type PartyView struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
}

// StatusLogView is one ledger entry with its author's name resolved.
type StatusLogView struct {
	Status        parcel.Status
	Timestamp     time.Time
	UpdatedBy     kernel.UUID
	UpdatedByName string
	Location      string
	Note          string
}

// ParcelView is the populated read model of a parcel.
type ParcelView struct {
	ID                   kernel.UUID
	TrackingID           string
	Sender               PartyView
	Receiver             PartyView
	SenderAddress        string
	ReceiverAddress      string
	ParcelType           string
	Weight               float64
	Description          string
	Fee                  int64
	CurrentStatus        parcel.Status
	IsActive             bool
	CreatedAt            time.Time
	ExpectedDeliveryDate *time.Time
	StatusLogs           []StatusLogView
}

// Parties returns what the access policy needs to know about the parcel.
func (v ParcelView) Parties() services.ParcelParties {
	return services.ParcelParties{
		Sender:   v.Sender.ID,
		Receiver: v.Receiver.ID,
		Status:   v.CurrentStatus,
	}
}

const parcelViewColumns = `
	p.id, p.tracking_id,
	p.sender_id, COALESCE(s.name, ''), COALESCE(s.email, ''), COALESCE(s.phone, ''),
	p.receiver_id, COALESCE(r.name, ''), COALESCE(r.email, ''), COALESCE(r.phone, ''),
	p.sender_address, p.receiver_address, p.parcel_type, p.weight, p.description,
	p.fee, p.current_status, p.is_active, p.created_at, p.expected_delivery_date`

// parcelViews starts a query over parcels joined with both parties.
func parcelViews(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("parcels AS p").
		Select(parcelViewColumns).
		Joins("LEFT JOIN users s ON s.id = p.sender_id").
		Joins("LEFT JOIN users r ON r.id = p.receiver_id")
}

// findParcelViews runs q newest first and attaches every ledger.
func findParcelViews(ctx context.Context, db *gorm.DB, q *gorm.DB) ([]ParcelView, error) {
	rows, err := q.Order("p.created_at DESC").Order("p.id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ParcelView, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			v                        ParcelView
			id, senderID, receiverID uuid.UUID
			status                   int
			createdAt                time.Time
			expectedDeliveryDate     *time.Time
		)

		err = rows.Scan(
			&id, &v.TrackingID,
			&senderID, &v.Sender.Name, &v.Sender.Email, &v.Sender.Phone,
			&receiverID, &v.Receiver.Name, &v.Receiver.Email, &v.Receiver.Phone,
			&v.SenderAddress, &v.ReceiverAddress, &v.ParcelType, &v.Weight, &v.Description,
			&v.Fee, &status, &v.IsActive, &createdAt, &expectedDeliveryDate,
		)
		if err != nil {
			return nil, err
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.Sender.ID, err = kernel.UUIDFromBytes(senderID[:]); err != nil {
			return nil, err
		}
		if v.Receiver.ID, err = kernel.UUIDFromBytes(receiverID[:]); err != nil {
			return nil, err
		}
		v.CurrentStatus = parcel.Status(status)
		v.CreatedAt = createdAt.UTC()
		if expectedDeliveryDate != nil {
			d := expectedDeliveryDate.UTC()
			v.ExpectedDeliveryDate = &d
		}

		views = append(views, v)
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return views, nil
	}

	logs, err := statusLogViews(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].StatusLogs = logs[ids[i]]
		if views[i].StatusLogs == nil {
			views[i].StatusLogs = make([]StatusLogView, 0)
		}
	}

	return views, nil
}

// statusLogViews loads the ledgers of parcelIDs in ledger order, keyed by parcel.
func statusLogViews(ctx context.Context, db *gorm.DB, parcelIDs []uuid.UUID) (map[uuid.UUID][]StatusLogView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			l.parcel_id,
			l.status,
			l.timestamp,
			l.updated_by,
			COALESCE(u.name, ''),
			COALESCE(l.location, ''),
			COALESCE(l.note, '')
		FROM parcel_status_logs l
		LEFT JOIN users u ON u.id = l.updated_by
		WHERE l.parcel_id IN ?
		ORDER BY l.parcel_id, l.seq
	`, parcelIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]StatusLogView, len(parcelIDs))
	for rows.Next() {
		var (
			entry               StatusLogView
			parcelID, updatedBy uuid.UUID
			status              int
			timestamp           time.Time
		)
		if err = rows.Scan(
			&parcelID, &status, &timestamp, &updatedBy,
			&entry.UpdatedByName, &entry.Location, &entry.Note,
		); err != nil {
			return nil, err
		}

		if entry.UpdatedBy, err = kernel.UUIDFromBytes(updatedBy[:]); err != nil {
			return nil, err
		}
		entry.Status = parcel.Status(status)
		entry.Timestamp = timestamp.UTC()

		result[parcelID] = append(result[parcelID], entry)
	}

	return result, rows.Err()
}
