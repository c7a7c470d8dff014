package place

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type FakeRepository struct {
	Places      []Place
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (p Place, err error) {
	if r.ReturnError {
		return p, fmt.Errorf("could not create place %s", input.Slug)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Places {
		if existing.Slug == input.Slug {
			return p, ErrSlugAlreadyExists
		}
	}
	p = Place{
		ID:          ID(len(r.Places) + 1),
		Slug:        input.Slug,
		Name:        input.Name,
		Summary:     input.Summary,
		Description: input.Description,
		Coordinates: input.Coordinates,
		ImageURL:    input.ImageURL,
		Status:      input.Status,
		CreatedAt:   input.CreatedAt,
		UpdatedAt:   input.CreatedAt,
	}
	r.Places = append(r.Places, p)
	return p, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (p Place, err error) {
	if r.ReturnError {
		return p, fmt.Errorf("could not get place %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, p := range r.Places {
		if p.ID == id {
			return p, nil
		}
	}
	return p, ErrPlaceDoesNotExist
}

func (r *FakeRepository) ListPublished(ctx context.Context) ([]Place, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list places")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	published := make([]Place, 0, len(r.Places))
	for _, p := range r.Places {
		if p.IsPublished() {
			published = append(published, p)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].UpdatedAt.After(published[j].UpdatedAt)
	})
	return published, nil
}

func (r *FakeRepository) SetStatus(ctx context.Context, id ID, status Status, at time.Time) (p Place, err error) {
	if r.ReturnError {
		return p, fmt.Errorf("could not set status of place %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, p := range r.Places {
		if p.ID == id {
			r.Places[ix].Status = status
			r.Places[ix].UpdatedAt = at
			return r.Places[ix], nil
		}
	}
	return p, ErrPlaceDoesNotExist
}

type FakeChangePublisher struct {
	Published   []Change
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeChangePublisher() *FakeChangePublisher {
	return &FakeChangePublisher{}
}

func (p *FakeChangePublisher) PublishChange(ctx context.Context, change Change) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish change of place %d", change.PlaceID)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, change)
	return nil
}
