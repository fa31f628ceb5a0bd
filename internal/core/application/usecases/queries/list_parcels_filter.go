package queries

import (
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// ParcelFilter narrows a parcel list. Nil fields do not filter.
type ParcelFilter struct {
	Status    *parcel.Status
	Sender    *kernel.UUID
	Receiver  *kernel.UUID
	CreatedOn *time.Time
}

// parseStatusFilter treats an empty string as "no filter".
func parseStatusFilter(s string) (*parcel.Status, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	status, err := parcel.ParseStatus(s)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// parseIDFilter treats an empty string as "no filter".
func parseIDFilter(s string) (*kernel.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// apply adds the filter conditions to q. CreatedOn matches the whole UTC day.
func (f ParcelFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != nil {
		q = q.Where("p.current_status = ?", int(*f.Status))
	}
	if f.Sender != nil {
		q = q.Where("p.sender_id = ?", f.Sender.Bytes())
	}
	if f.Receiver != nil {
		q = q.Where("p.receiver_id = ?", f.Receiver.Bytes())
	}
	if f.CreatedOn != nil {
		day := now.With(f.CreatedOn.UTC())
		q = q.Where("p.created_at >= ? AND p.created_at < ?", day.BeginningOfDay(), day.BeginningOfDay().AddDate(0, 0, 1))
	}
	return q
}
