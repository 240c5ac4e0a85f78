package models

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// StatsResponse модель сводки для ответа API
type StatsResponse struct {
	TotalSlots        int `json:"totalSlots"`
	Pending           int `json:"pending"`
	Approved          int `json:"approved"`
	Denied            int `json:"denied"`
	TotalAppointments int `json:"totalAppointments"`
}

// FromDomainStats конвертирует доменную сводку в модель ответа
func FromDomainStats(s domain.Stats) *StatsResponse {
	return &StatsResponse{
		TotalSlots:        s.TotalSlots,
		Pending:           s.Pending,
		Approved:          s.Approved,
		Denied:            s.Denied,
		TotalAppointments: s.TotalAppointments,
	}
}
