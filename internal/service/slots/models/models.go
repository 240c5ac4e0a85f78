package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotResponse модель слота для ответа API
type SlotResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// FromDomainSlot конвертирует доменный слот в модель ответа
func FromDomainSlot(slot *domain.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:          slot.ID,
		Date:        slot.Date.Format(domain.DateFormat),
		StartTime:   slot.StartTime.String(),
		EndTime:     slot.EndTime.String(),
		IsAvailable: slot.IsAvailable,
	}
}

// FromDomainSlotList конвертирует список слотов. Пустой список сериализуется как [].
func FromDomainSlotList(slots []*domain.TimeSlot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromDomainSlot(s))
	}
	return result
}
