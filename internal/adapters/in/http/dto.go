package http

import (
	"time"

	"parceltrack/internal/core/application/usecases/queries"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateParcelRequest struct {
	ReceiverEmail   string  `json:"receiverEmail"`
	ReceiverAddress string  `json:"receiverAddress"`
	ParcelType      string  `json:"parcelType"`
	Weight          float64 `json:"weight"`
	Description     string  `json:"description"`
}

type UpdateStatusRequest struct {
	Status               string     `json:"status"`
	Location             string     `json:"location"`
	Note                 string     `json:"note"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate"`
}

// Error is the failure envelope of every endpoint.
type Error struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserEnvelope struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

type UserList struct {
	Success bool   `json:"success"`
	Users   []User `json:"users"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type ToggledUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type ToggleStatusResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    ToggledUser `json:"user"`
}

type Party struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type StatusLog struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy Party     `json:"updatedBy"`
	Location  string    `json:"location,omitempty"`
	Note      string    `json:"note,omitempty"`
}

type Parcel struct {
	ID                   string      `json:"id"`
	TrackingID           string      `json:"trackingId"`
	Sender               Party       `json:"sender"`
	Receiver             Party       `json:"receiver"`
	SenderAddress        string      `json:"senderAddress"`
	ReceiverAddress      string      `json:"receiverAddress"`
	ParcelType           string      `json:"parcelType"`
	Weight               float64     `json:"weight"`
	Description          string      `json:"description"`
	Fee                  int64       `json:"fee"`
	CurrentStatus        string      `json:"currentStatus"`
	IsActive             bool        `json:"isActive"`
	CreatedAt            time.Time   `json:"createdAt"`
	ExpectedDeliveryDate *time.Time  `json:"expectedDeliveryDate"`
	StatusLogs           []StatusLog `json:"statusLogs"`
}

type ParcelEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Parcel  Parcel `json:"parcel"`
}

type ParcelList struct {
	Success bool     `json:"success"`
	Parcels []Parcel `json:"parcels"`
}

func toUser(v queries.UserView) User {
	return User{
		ID:        v.ID.String(),
		Name:      v.Name,
		Email:     v.Email,
		Role:      v.Role.String(),
		Phone:     v.Phone,
		Address:   v.Address,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
	}
}

func toUsers(views []queries.UserView) []User {
	result := make([]User, 0, len(views))
	for _, v := range views {
		result = append(result, toUser(v))
	}
	return result
}

func toParty(v queries.PartyView) Party {
	return Party{ID: v.ID.String(), Name: v.Name, Email: v.Email, Phone: v.Phone}
}

func toParcel(v queries.ParcelView) Parcel {
	logs := make([]StatusLog, 0, len(v.StatusLogs))
	for _, l := range v.StatusLogs {
		logs = append(logs, StatusLog{
			Status:    l.Status.String(),
			Timestamp: l.Timestamp,
			UpdatedBy: Party{ID: l.UpdatedBy.String(), Name: l.UpdatedByName},
			Location:  l.Location,
			Note:      l.Note,
		})
	}

	return Parcel{
		ID:                   v.ID.String(),
		TrackingID:           v.TrackingID,
		Sender:               toParty(v.Sender),
		Receiver:             toParty(v.Receiver),
		SenderAddress:        v.SenderAddress,
		ReceiverAddress:      v.ReceiverAddress,
		ParcelType:           v.ParcelType,
		Weight:               v.Weight,
		Description:          v.Description,
		Fee:                  v.Fee,
		CurrentStatus:        v.CurrentStatus.String(),
		IsActive:             v.IsActive,
		CreatedAt:            v.CreatedAt,
		ExpectedDeliveryDate: v.ExpectedDeliveryDate,
		StatusLogs:           logs,
	}
}

func toParcels(views []queries.ParcelView) []Parcel {
	result := make([]Parcel, 0, len(views))
	for _, v := range views {
		result = append(result, toParcel(v))
	}
	return result
}
