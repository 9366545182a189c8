package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

// AvailableHours são os horários oferecidos em todo dia útil.
var AvailableHours = []string{"08:45", "09:45", "10:45", "11:45", "13:45", "14:45", "15:45", "16:45", "17:45"}

type AvailableSlotsUseCase struct {
	Repo entity.AppointmentRepositoryInterface
	Now  func() time.Time
}

func NewAvailableSlotsUseCase(repo entity.AppointmentRepositoryInterface) *AvailableSlotsUseCase {
	return &AvailableSlotsUseCase{Repo: repo, Now: time.Now}
}

// Slots devolve os horários livres da data. Se a data for hoje, só horários
// depois do momento atual.
func (uc *AvailableSlotsUseCase) Slots(ctx context.Context, date string) ([]string, error) {
	now := uc.Now()
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return nil, newValidationPayloadError([]ValidationError{{"data", "must be a valid date (YYYY-MM-DD)"}})
	}

	booked, err := uc.Repo.BookedSlots(ctx, date)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load booked slots", Err: err}
	}

	return FilterSlots(AvailableHours, booked, day, now), nil
}

// Dates devolve os próximos `count` dias úteis a partir de amanhã.
func (uc *AvailableSlotsUseCase) Dates(count int) []time.Time {
	return NextBusinessDays(uc.Now(), count)
}

func FilterSlots(hours, booked []string, day, now time.Time) []string {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}

	sameDay := day.Year() == now.Year() && day.YearDay() == now.YearDay()

	free := []string{}
	for _, h := range hours {
		if taken[h] {
			continue
		}
		if sameDay {
			slot, err := time.ParseInLocation("15:04", h, now.Location())
			if err != nil {
				continue
			}
			if slot.Hour() < now.Hour() || (slot.Hour() == now.Hour() && slot.Minute() <= now.Minute()) {
				continue
			}
		}
		free = append(free, h)
	}
	return free
}

func NextBusinessDays(from time.Time, count int) []time.Time {
	days := make([]time.Time, 0, count)
	current := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	for len(days) < count {
		current = current.AddDate(0, 0, 1)
		if wd := current.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, current)
		}
	}
	return days
}
