// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// The parcel aggregate is stored as one parcels row plus one insert-only
// parcel_status_logs row per ledger entry.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// TrackingIDIndex is the unique index enforcing tracking ID uniqueness.
const TrackingIDIndex = "idx_parcels_tracking_id"

// ParcelDTO represents the database structure for persisting parcel aggregates.
// CurrentStatus duplicates the last ledger entry so lists can filter on it.
type ParcelDTO struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TrackingID           string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_parcels_tracking_id"`
	SenderID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	ReceiverID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	SenderAddress        string         `gorm:"type:text;not null"`
	ReceiverAddress      string         `gorm:"type:text;not null"`
	ParcelType           string         `gorm:"type:varchar(64);not null"`
	Weight               float64        `gorm:"not null"`
	Description          string         `gorm:"type:text;not null"`
	Fee                  int64          `gorm:"not null"`
	CurrentStatus        int            `gorm:"type:smallint;not null;index"`
	IsActive             bool           `gorm:"not null"`
	CreatedAt            time.Time      `gorm:"not null;index"`
	ExpectedDeliveryDate *time.Time     `gorm:"index"`
	Version              int            `gorm:"not null"`
	StatusLogs           []StatusLogDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "parcel_dtos".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// StatusLogDTO is one ledger entry. (ParcelID, Seq) is the primary key and
// Seq is the entry's position in the ledger.
type StatusLogDTO struct {
	ParcelID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	Status    int       `gorm:"type:smallint;not null"`
	Timestamp time.Time `gorm:"not null"`
	UpdatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Location  string    `gorm:"type:text"`
	Note      string    `gorm:"type:text"`
}

// TableName overrides GORM's default "status_log_dtos".
func (StatusLogDTO) TableName() string {
	return "parcel_status_logs"
}

// fromDomain converts a parcel aggregate to its database representation,
// including every ledger entry.
func fromDomain(p *parcel.Parcel) ParcelDTO {
	parcelID := p.ID().Bytes()
	shipment := p.Shipment()

	return ParcelDTO{
		ID:                   parcelID,
		TrackingID:           p.TrackingID().String(),
		SenderID:             p.Sender().Bytes(),
		ReceiverID:           p.Receiver().Bytes(),
		SenderAddress:        shipment.SenderAddress,
		ReceiverAddress:      shipment.ReceiverAddress,
		ParcelType:           shipment.Type.String(),
		Weight:               shipment.Weight.Kilograms(),
		Description:          shipment.Description,
		Fee:                  int64(p.Fee()),
		CurrentStatus:        int(p.Status()),
		IsActive:             p.IsActive(),
		CreatedAt:            p.CreatedAt(),
		ExpectedDeliveryDate: p.ExpectedDeliveryDate(),
		Version:              p.Version(),
		StatusLogs:           statusLogsFromDomain(parcelID, p.History()),
	}
}

func statusLogsFromDomain(parcelID uuid.UUID, history []parcel.StatusLogEntry) []StatusLogDTO {
	logs := make([]StatusLogDTO, 0, len(history))
	for seq, entry := range history {
		logs = append(logs, StatusLogDTO{
			ParcelID:  parcelID,
			Seq:       seq,
			Status:    int(entry.Status()),
			Timestamp: entry.Timestamp(),
			UpdatedBy: entry.UpdatedBy().Bytes(),
			Location:  entry.Location(),
			Note:      entry.Note(),
		})
	}
	return logs
}

// toDomain rebuilds the aggregate with RestoreParcel. StatusLogs must be
// ordered by Seq.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := parcel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	sender, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	receiver, err := kernel.UUIDFromBytes(dto.ReceiverID[:])
	if err != nil {
		return nil, err
	}

	weight, err := parcel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	parcelType, err := parcel.NewType(dto.ParcelType)
	if err != nil {
		return nil, err
	}

	logs := make([]parcel.StatusLogEntry, 0, len(dto.StatusLogs))
	for _, logDTO := range dto.StatusLogs {
		entry, logErr := statusLogToDomain(logDTO)
		if logErr != nil {
			return nil, logErr
		}
		logs = append(logs, entry)
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		ID:         id,
		TrackingID: trackingID,
		Sender:     sender,
		Receiver:   receiver,
		Shipment: parcel.Shipment{
			SenderAddress:   dto.SenderAddress,
			ReceiverAddress: dto.ReceiverAddress,
			Type:            parcelType,
			Weight:          weight,
			Description:     dto.Description,
		},
		Fee:                  parcel.Fee(dto.Fee),
		StatusLogs:           logs,
		IsActive:             dto.IsActive,
		CreatedAt:            dto.CreatedAt,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		Version:              dto.Version,
	})
}

func statusLogToDomain(dto StatusLogDTO) (parcel.StatusLogEntry, error) {
	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return parcel.StatusLogEntry{}, err
	}

	return parcel.NewStatusLogEntry(parcel.Status(dto.Status), updatedBy, dto.Timestamp, dto.Location, dto.Note)
}
