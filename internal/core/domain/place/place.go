package place

import (
	"errors"
	"fmt"
	"time"
	c "wonderchain/internal/core/domain/common"
	e "wonderchain/internal/core/domain/errors"
)

var (
	ErrPlaceDoesNotExist  = errors.New("place does not exist")
	ErrSlugAlreadyExists  = errors.New("place slug already exists")
	ErrInvalidPlaceStatus = errors.New("invalid place status")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

type ID int64

type Slug string

type Status struct {
	value string
}

func (s Status) String() string {
	return s.value
}

var (
	StatusDraft     = Status{value: "draft"}
	StatusPublished = Status{value: "published"}
)

func ParseStatus(value string) (Status, error) {
	switch value {
	case StatusDraft.value:
		return StatusDraft, nil
	case StatusPublished.value:
		return StatusPublished, nil
	}
	return Status{}, ErrInvalidPlaceStatus
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return ErrInvalidCoordinates
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

type Place struct {
	ID          ID
	Slug        Slug
	Name        string
	Summary     c.Optional[string]
	Description c.Optional[string]
	Coordinates Coordinates
	ImageURL    c.Optional[string]
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Place) Validate() error {
	if p.Slug == "" {
		return e.NewInvalidStateError(fmt.Sprintf("slug is not set for place %d", p.ID))
	}
	if p.Status != StatusDraft && p.Status != StatusPublished {
		return e.NewInvalidStateError(fmt.Sprintf("unknown status of place %d", p.ID))
	}
	return p.Coordinates.Validate()
}

func (p *Place) IsPublished() bool {
	return p.Status == StatusPublished
}
