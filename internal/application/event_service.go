package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clubware/server/internal/domain/entity"
	"github.com/clubware/server/internal/domain/repository"
	"github.com/clubware/server/pkg/helpers"
)

// EventService owns the permission-gated event lifecycle, including
// the object-store image handling.
type EventService struct {
	Events        repository.EventRepository
	Users         repository.UserRepository
	Images        ImageStore
	DefaultImage  string
	Logger        *logrus.Logger
	ES            *elasticsearch.Client
	ESEventsIndex string
}

func NewEventService(events repository.EventRepository, users repository.UserRepository, images ImageStore, defaultImage string, logger *logrus.Logger, es *elasticsearch.Client, esEventsIndex string) *EventService {
	return &EventService{
		Events:        events,
		Users:         users,
		Images:        images,
		DefaultImage:  defaultImage,
		Logger:        logger,
		ES:            es,
		ESEventsIndex: esEventsIndex,
	}
}

// EventInput carries the client-supplied event fields.
type EventInput struct {
	Title       string
	Description string
	Location    string
	Date        string
	Price       int
	FormURL     string
	Image       string
	Visible     bool
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entity.ClubEvent, error) {
	ev, err := s.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return ev, nil
}

// GetEvents returns every event, non-visible ones included; visibility
// filtering stays client-side.
func (s *EventService) GetEvents(ctx context.Context) ([]*entity.ClubEvent, error) {
	events, err := s.Events.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return events, nil
}

// authorize resolves the bearer secret and checks the required flag.
// An unresolvable caller and a missing permission are distinct errors,
// though both render the same failure envelope.
func (s *EventService) authorize(ctx context.Context, auth string, required entity.Permission) (*entity.User, error) {
	caller, err := s.Users.GetBySecret(ctx, auth)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if !caller.HasPermission(required) {
		return nil, ErrForbidden
	}
	return caller, nil
}

// materializeImage uploads a data-URI image under a fresh key and
// returns its public URL. The placeholder is never uploaded.
func (s *EventService) materializeImage(ctx context.Context, image string) (string, error) {
	contentType, data, err := helpers.ParseDataURI(image)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDependency, err)
	}
	url, err := s.Images.Upload(ctx, uuid.NewString(), contentType, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDependency, err)
	}
	return url, nil
}

// CreateEvent requires CREATE_EVENT. A non-placeholder data-URI image
// is materialized into the object store before the record is created;
// any image failure aborts the whole create.
func (s *EventService) CreateEvent(ctx context.Context, auth string, in EventInput) (*entity.ClubEvent, error) {
	if _, err := s.authorize(ctx, auth, entity.PermissionCreateEvent); err != nil {
		return nil, err
	}

	image := in.Image
	if image == "" {
		image = s.DefaultImage
	}
	if image != s.DefaultImage && helpers.IsDataURI(image) {
		url, err := s.materializeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		image = url
	}

	ev := &entity.ClubEvent{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date,
		Price:       in.Price,
		FormURL:     in.FormURL,
		Image:       image,
		Visible:     in.Visible,
	}
	if err := s.Events.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	s.indexEvent(ctx, ev)
	return ev, nil
}

// UpdateEvent requires EDIT_EVENT. When the image changes, the new one
// is uploaded first and the previous stored image is deleted only
// after the record update succeeds, so a failed upload never orphans
// the record and never destroys the old image prematurely.
func (s *EventService) UpdateEvent(ctx context.Context, id, auth string, in EventInput) (*entity.ClubEvent, error) {
	if _, err := s.authorize(ctx, auth, entity.PermissionEditEvent); err != nil {
		return nil, err
	}

	prev, err := s.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	image := in.Image
	if image == "" {
		image = prev.Image
	}
	obsolete := ""
	if in.Image != "" && in.Image != prev.Image {
		if image != s.DefaultImage && helpers.IsDataURI(image) {
			url, err := s.materializeImage(ctx, image)
			if err != nil {
				return nil, err
			}
			image = url
		}
		if prev.Image != "" && prev.Image != s.DefaultImage {
			obsolete = prev.Image
		}
	}

	ev := &entity.ClubEvent{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date,
		Price:       in.Price,
		FormURL:     in.FormURL,
		Image:       image,
		Visible:     in.Visible,
		CreatedAt:   prev.CreatedAt,
	}
	if err := s.Events.Update(ctx, ev); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	if obsolete != "" {
		if err := s.Images.Delete(ctx, obsolete); err != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"event": id, "image": obsolete}).
				Warn("failed to delete replaced event image")
		}
	}

	s.indexEvent(ctx, ev)
	return ev, nil
}

// DeleteEvent requires DELETE_EVENT. The stored image is removed
// first; an image-delete failure aborts before the record delete.
func (s *EventService) DeleteEvent(ctx context.Context, id, auth string) (*entity.ClubEvent, error) {
	if _, err := s.authorize(ctx, auth, entity.PermissionDeleteEvent); err != nil {
		return nil, err
	}

	ev, err := s.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	if ev.Image != "" && ev.Image != s.DefaultImage {
		if err := s.Images.Delete(ctx, ev.Image); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDependency, err)
		}
	}

	deleted, err := s.Events.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}

	s.removeEventIndex(ctx, id)
	return deleted, nil
}

// indexEvent mirrors the event into Elasticsearch, best effort, never
// on the mutation critical path.
func (s *EventService) indexEvent(ctx context.Context, ev *entity.ClubEvent) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          ev.ID,
		"title":       ev.Title,
		"description": ev.Description,
		"location":    ev.Location,
		"date":        ev.Date,
		"price":       ev.Price,
		"visible":     ev.Visible,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESEventsIndex, DocumentID: ev.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("event", ev.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "event": ev.ID}).Warn("es index response error")
	}
}

func (s *EventService) removeEventIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESEventsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("event", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// SearchEvents does a multi_match over title, description, and
// location. Returns an empty slice when search is unconfigured.
func (s *EventService) SearchEvents(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESEventsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
