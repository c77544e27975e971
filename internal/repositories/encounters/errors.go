package encounters

import (
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

const (
	errEncounterRequired  = "encounter is required"
	errEncounterIDEmpty   = "encounter ID is required"
	errGameIDRequired     = "game ID is required"
	errLocationIDRequired = "location ID is required"
)

func validateEncounter(e *entities.Encounter) error {
	switch {
	case e == nil:
		return errors.InvalidArgument(errEncounterRequired)
	case e.ID == "":
		return errors.InvalidArgument(errEncounterIDEmpty)
	case e.GameID == "":
		return errors.InvalidArgument(errGameIDRequired)
	case e.LocationID == "":
		return errors.InvalidArgument(errLocationIDRequired)
	}
	return nil
}

func cloneEncounter(e *entities.Encounter) *entities.Encounter {
	c := *e
	c.ParticipantIDs = append([]string(nil), e.ParticipantIDs...)
	return &c
}
