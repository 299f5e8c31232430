package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"aw-tracker-bot/internal/models"
	"aw-tracker-bot/internal/performance"
	"aw-tracker-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// AbsenceState is the calendar cell state cycled by tapping a date.
type AbsenceState string

const (
	StateNone     AbsenceState = "none"
	StateHoliday  AbsenceState = "holiday"
	StateSickness AbsenceState = "sickness"
	StateTraining AbsenceState = "training"
)

// NextAbsenceState cycles none → holiday → sickness → training → none.
func NextAbsenceState(current AbsenceState) AbsenceState {
	switch current {
	case StateNone:
		return StateHoliday
	case StateHoliday:
		return StateSickness
	case StateSickness:
		return StateTraining
	}
	return StateNone
}

func stateOf(a *models.Absence) AbsenceState {
	if a == nil {
		return StateNone
	}
	return AbsenceState(a.Type)
}

type AbsenceService struct {
	repo      repository.AbsenceRepository
	schedules *ScheduleService
	logger    *logrus.Logger
}

func NewAbsenceService(repo repository.AbsenceRepository, schedules *ScheduleService, logger *logrus.Logger) *AbsenceService {
	return &AbsenceService{repo: repo, schedules: schedules, logger: newServiceLogger(logger)}
}

func (s *AbsenceService) checkWorkingDay(date string) error {
	d, err := performance.ParseDate(date)
	if err != nil {
		return err
	}
	working, err := s.schedules.IsWorkingDay(d)
	if err != nil {
		return err
	}
	if !working {
		return ErrNotWorkingDay
	}
	return nil
}

// AddAbsence records a new absence. The date must be a working day and must
// not already carry an absence.
func (s *AbsenceService) AddAbsence(a performance.Absence) (*models.Absence, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkWorkingDay(a.Date); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByDate(a.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.WithField("date", a.Date).Warn("Absence already exists for date")
		return nil, ErrAbsenceExists
	}

	row := toAbsenceModel(a)
	if err := s.repo.Create(row); err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateAbsence replaces the record on date with a, which may move it to another date.
func (s *AbsenceService) UpdateAbsence(date string, a performance.Absence) (*models.Absence, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrAbsenceNotFound
	}

	if a.Date != date {
		if err := s.checkWorkingDay(a.Date); err != nil {
			return nil, err
		}
		clash, err := s.repo.GetByDate(a.Date)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, ErrAbsenceExists
		}
	}

	row := toAbsenceModel(a)
	if err := s.repo.Replace(date, row); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAbsenceNotFound
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"from": date, "to": a.Date}).Info("Absence updated")
	return row, nil
}

func (s *AbsenceService) DeleteAbsence(date string) error {
	err := s.repo.DeleteByDate(date)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAbsenceNotFound
	}
	return err
}

// GetAbsence returns nil when the date has no absence.
func (s *AbsenceService) GetAbsence(date string) (*models.Absence, error) {
	return s.repo.GetByDate(date)
}

func (s *AbsenceService) ListMonth(month performance.Month) ([]models.Absence, error) {
	return s.repo.GetByMonth(month.String())
}

// CycleAbsence advances the date to its next state. New records are one full
// day deducted from available hours. A record left on a date that is no
// longer a working day can only be cleared.
func (s *AbsenceService) CycleAbsence(date string) (AbsenceState, error) {
	existing, err := s.repo.GetByDate(date)
	if err != nil {
		return "", err
	}

	next := NextAbsenceState(stateOf(existing))
	if next != StateNone {
		if err := s.checkWorkingDay(date); err != nil {
			if !errors.Is(err, ErrNotWorkingDay) || existing == nil {
				return stateOf(existing), err
			}
			next = StateNone
		}
	}

	if next == StateNone {
		if err := s.repo.DeleteByDate(date); err != nil {
			return "", err
		}
		return StateNone, nil
	}

	one := 1.0
	replacement := performance.Absence{
		Date:      date,
		Type:      performance.AbsenceType(next),
		DaysCount: &one,
		Deduction: performance.DeductAvailableHours,
	}
	if existing != nil {
		replacement.Note = existing.Note
		replacement.Deduction = performance.DeductionType(existing.DeductionType)
		err = s.repo.Replace(date, toAbsenceModel(replacement))
	} else {
		err = s.repo.Create(toAbsenceModel(replacement))
	}
	if err != nil {
		return stateOf(existing), err
	}

	s.logger.WithFields(logrus.Fields{"date": date, "state": next}).Info("Absence state cycled")
	return next, nil
}

func toAbsenceModel(a performance.Absence) *models.Absence {
	return &models.Absence{
		Date:          a.Date,
		Type:          string(a.Type),
		DaysCount:     a.DaysCount,
		IsHalfDay:     a.IsHalfDay,
		CustomHours:   a.CustomHours,
		DeductionType: string(a.Deduction),
		Note:          a.Note,
	}
}

// ParseAbsenceArgs parses "DATE TYPE [full|half|<N>d|<N>h] [available|target] [note...]".
func ParseAbsenceArgs(args string) (performance.Absence, error) {
	parts := strings.Fields(args)
	if len(parts) < 2 {
		return performance.Absence{}, errors.New("usage: <YYYY-MM-DD> <holiday|sickness|training> [full|half|2d|3.5h] [available|target] [note]")
	}

	one := 1.0
	a := performance.Absence{
		Date:      parts[0],
		Type:      performance.AbsenceType(strings.ToLower(parts[1])),
		DaysCount: &one,
		Deduction: performance.DeductAvailableHours,
	}

	rest := parts[2:]
	if len(rest) > 0 {
		if ok, err := applyDuration(&a, strings.ToLower(rest[0])); err != nil {
			return performance.Absence{}, err
		} else if ok {
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		switch strings.ToLower(rest[0]) {
		case "available":
			a.Deduction = performance.DeductAvailableHours
			rest = rest[1:]
		case "target":
			a.Deduction = performance.DeductMonthlyTarget
			rest = rest[1:]
		}
	}
	a.Note = strings.Join(rest, " ")
	return a, a.Validate()
}

func applyDuration(a *performance.Absence, token string) (bool, error) {
	switch {
	case token == "full":
		return true, nil
	case token == "half":
		a.IsHalfDay = true
		return true, nil
	case strings.HasSuffix(token, "d"), strings.HasSuffix(token, "h"):
		v, err := strconv.ParseFloat(strings.ReplaceAll(token[:len(token)-1], ",", "."), 64)
		if err != nil {
			return false, nil
		}
		if strings.HasSuffix(token, "h") {
			a.DaysCount = nil
			a.CustomHours = &v
		} else {
			a.DaysCount = &v
		}
		return true, nil
	}
	return false, nil
}

var absenceIcons = map[performance.AbsenceType]string{
	performance.AbsenceHoliday:  "🏖",
	performance.AbsenceSickness: "🤒",
	performance.AbsenceTraining: "📚",
}

func FormatAbsenceList(absences []models.Absence, sched performance.Schedule) string {
	if len(absences) == 0 {
		return "📭 No absences recorded"
	}

	var b strings.Builder
	b.WriteString("📋 Absences:\n\n")
	for _, row := range absences {
		a := row.ToEngine()
		hours, err := performance.AbsenceHours(a, sched)
		if err != nil {
			fmt.Fprintf(&b, "%s ⚠️ invalid record: %v\n", a.Date, err)
			continue
		}
		pool := "available"
		if a.Deduction == performance.DeductMonthlyTarget {
			pool = "target"
		}
		fmt.Fprintf(&b, "%s %s %s - %.2fh from %s", absenceIcons[a.Type], a.Date, a.Type, performance.Round2(hours), pool)
		if a.IsHalfDay {
			b.WriteString(" (half day)")
		}
		if a.Note != "" {
			b.WriteString(" - " + a.Note)
		}
		b.WriteString("\n")
	}
	return b.String()
}
