package models

import (
	"strings"
	"time"
)

// AnimalType is the species of a herd record.
type AnimalType string

const (
	AnimalCow     AnimalType = "cow"
	AnimalPig     AnimalType = "pig"
	AnimalChicken AnimalType = "chicken"
	AnimalSheep   AnimalType = "sheep"
	AnimalGoat    AnimalType = "goat"
	AnimalHorse   AnimalType = "horse"
	AnimalOther   AnimalType = "other"
)

// AnimalTypes lists every species in display order.
var AnimalTypes = []AnimalType{
	AnimalCow, AnimalPig, AnimalChicken, AnimalSheep, AnimalGoat, AnimalHorse, AnimalOther,
}

var animalTypeAliases = map[string]AnimalType{
	"cow": AnimalCow, "корова": AnimalCow,
	"pig": AnimalPig, "свинья": AnimalPig,
	"chicken": AnimalChicken, "курица": AnimalChicken,
	"sheep": AnimalSheep, "овца": AnimalSheep,
	"goat": AnimalGoat, "коза": AnimalGoat,
	"horse": AnimalHorse, "лошадь": AnimalHorse,
}

// ParseAnimalType accepts English and Russian names in any case.
// Anything unrecognised is AnimalOther.
func ParseAnimalType(s string) AnimalType {
	if t, ok := animalTypeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return AnimalOther
}

// HealthStatus is the recorded condition of an animal.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

var HealthStatuses = []HealthStatus{HealthExcellent, HealthGood, HealthFair, HealthPoor}

var healthAliases = map[string]HealthStatus{
	"excellent": HealthExcellent, "отличное": HealthExcellent,
	"good": HealthGood, "хорошее": HealthGood,
	"fair": HealthFair, "удовлетворительное": HealthFair,
	"poor": HealthPoor, "плохое": HealthPoor,
}

// ParseHealthStatus accepts English and Russian names in any case.
// Legacy "under treatment" values and unknown input map to HealthGood.
func ParseHealthStatus(s string) HealthStatus {
	if h, ok := healthAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return h
	}
	return HealthGood
}

// Animal is one record of the herd.
type Animal struct {
	ID    string
	Name  string
	Type  AnimalType
	Breed string

	// BirthDate is optional.
	BirthDate *time.Time

	// Weight in kilograms. Zero means not recorded.
	Weight float64

	HealthStatus HealthStatus
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Statistics summarises the herd.
type Statistics struct {
	Total    int
	ByType   map[AnimalType]int
	ByHealth map[HealthStatus]int

	// AverageWeight only counts animals with a recorded weight.
	AverageWeight float64
}

// Summarize computes herd statistics over animals.
func Summarize(animals []Animal) Statistics {
	st := Statistics{
		Total:    len(animals),
		ByType:   make(map[AnimalType]int),
		ByHealth: make(map[HealthStatus]int),
	}

	var sum float64
	var weighed int
	for _, a := range animals {
		st.ByType[a.Type]++
		if a.HealthStatus != "" {
			st.ByHealth[a.HealthStatus]++
		}
		if a.Weight > 0 {
			sum += a.Weight
			weighed++
		}
	}
	if weighed > 0 {
		st.AverageWeight = sum / float64(weighed)
	}
	return st
}
