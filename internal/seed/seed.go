package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"interviewprep/internal/model"
	"interviewprep/internal/repository"
)

// Result reports how many records a seeding run created.
type Result struct {
	Interviewers int `json:"interviewers"`
	Slots        int `json:"slots"`
}

type demoInterviewer struct {
	name        string
	company     string
	designation string
	experience  int
	hourlyRate  string
	domains     []string
	rating      float64
	slots       []demoSlot
}

type demoSlot struct {
	dayOffset int
	label     string
	hour      int
	duration  int
	price     string
	kind      string
	domain    string
	profile   string
}

var demoInterviewers = []demoInterviewer{
	{
		name:        "Sarah Chen",
		company:     "Google",
		designation: "Senior Software Engineer",
		experience:  8,
		hourlyRate:  "120.00",
		domains:     []string{"Backend", "System Design"},
		rating:      4.8,
		slots: []demoSlot{
			{dayOffset: 1, label: "10:00 AM", hour: 10, duration: 60, price: "999.00", kind: "technical", domain: "backend", profile: "sde"},
			{dayOffset: 1, label: "2:00 PM", hour: 14, duration: 60, price: "999.00", kind: "technical", domain: "backend", profile: "sde"},
			{dayOffset: 3, label: "11:00 AM", hour: 11, duration: 45, price: "799.00", kind: "system-design", domain: "backend", profile: "sde"},
		},
	},
	{
		name:        "Rahul Verma",
		company:     "Amazon",
		designation: "Engineering Manager",
		experience:  12,
		hourlyRate:  "150.00",
		domains:     []string{"Behavioral", "Leadership"},
		rating:      4.9,
		slots: []demoSlot{
			{dayOffset: 2, label: "9:00 AM", hour: 9, duration: 45, price: "899.00", kind: "behavioral", domain: "management", profile: "em"},
			{dayOffset: 4, label: "4:00 PM", hour: 16, duration: 45, price: "899.00", kind: "behavioral", domain: "management", profile: "em"},
		},
	},
	{
		name:        "Priya Nair",
		company:     "Microsoft",
		designation: "Principal Engineer",
		experience:  10,
		hourlyRate:  "140.00",
		domains:     []string{"Frontend", "Web"},
		rating:      4.7,
		slots: []demoSlot{
			{dayOffset: 1, label: "5:00 PM", hour: 17, duration: 60, price: "1099.00", kind: "technical", domain: "frontend", profile: "sde"},
			{dayOffset: 5, label: "10:30 AM", hour: 10, duration: 60, price: "1099.00", kind: "technical", domain: "frontend", profile: "sde"},
		},
	},
	{
		name:        "Daniel Okafor",
		company:     "Stripe",
		designation: "Staff Engineer",
		experience:  9,
		hourlyRate:  "135.00",
		domains:     []string{"Backend", "Data"},
		rating:      4.6,
		slots: []demoSlot{
			{dayOffset: 2, label: "1:00 PM", hour: 13, duration: 60, price: "949.00", kind: "technical", domain: "data", profile: "sde"},
			{dayOffset: 6, label: "3:00 PM", hour: 15, duration: 45, price: "749.00", kind: "system-design", domain: "backend", profile: "sde"},
		},
	},
}

// Run populates the interviewer directory and slot inventory with demo data.
// It is meant for empty databases; running it again adds a fresh batch of
// slots for the seeded interviewers without duplicating them.
func Run(ctx context.Context, interviewerRepo repository.InterviewerRepository, slotRepo repository.SlotRepository) (*Result, error) {
	result := &Result{}

	existing, err := interviewerRepo.List(ctx, model.InterviewerFilter{})
	if err != nil {
		return nil, fmt.Errorf("list interviewers: %w", err)
	}
	byName := make(map[string]*model.Interviewer, len(existing))
	for i := range existing {
		byName[existing[i].Name] = &existing[i]
	}

	now := time.Now()
	for _, demo := range demoInterviewers {
		interviewer := byName[demo.name]
		if interviewer == nil {
			interviewer = &model.Interviewer{
				Name:        demo.name,
				Company:     demo.company,
				Designation: demo.designation,
				Experience:  demo.experience,
				HourlyRate:  decimal.RequireFromString(demo.hourlyRate),
				Domains:     demo.domains,
				Rating:      demo.rating,
				Avatar:      "/api/placeholder/40/40",
			}
			if err := interviewerRepo.Create(ctx, interviewer); err != nil {
				return nil, fmt.Errorf("create interviewer %s: %w", demo.name, err)
			}
			result.Interviewers++
		}

		for _, ds := range demo.slots {
			day := now.AddDate(0, 0, ds.dayOffset)
			slot := &model.InterviewSlot{
				InterviewerID:      interviewer.ID,
				InterviewerName:    interviewer.Name,
				InterviewerCompany: interviewer.Company,
				InterviewerAvatar:  interviewer.Avatar,
				Date:               time.Date(day.Year(), day.Month(), day.Day(), ds.hour, 0, 0, 0, time.UTC),
				Time:               ds.label,
				Duration:           ds.duration,
				Price:              decimal.RequireFromString(ds.price),
				Type:               ds.kind,
				Domain:             ds.domain,
				Profile:            ds.profile,
				Available:          true,
			}
			if err := slotRepo.Create(ctx, slot); err != nil {
				return nil, fmt.Errorf("create slot for %s: %w", demo.name, err)
			}
			result.Slots++
		}
	}

	return result, nil
}
