package store

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ResourceTypes are the selectable learning-material kinds.
var ResourceTypes = []string{"Book", "Podcast", "Video", "App", "Website", "Course", "Other"}

// ResourceStatuses track where a material sits in the pipeline.
var ResourceStatuses = []string{"Planned", "In Progress", "Completed", "Dropped"}

// Resources loads the learning-material list for a profile.
func (s *Store) Resources(profile string) ([]Resource, error) {
	var items []Resource
	_, err := loadDoc(s.profileDoc(profile, resourcesFile), &items)
	if err != nil {
		return []Resource{}, err
	}
	return items, nil
}

func (s *Store) saveResources(profile string, items []Resource) error {
	if items == nil {
		items = []Resource{}
	}
	return saveDoc(s.profileDoc(profile, resourcesFile), items)
}

func validateResource(r Resource) error {
	if strings.TrimSpace(r.Title) == "" {
		return ValidationError{Field: "title", Reason: "title is required"}
	}
	if r.URL != "" {
		u, err := url.Parse(r.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ValidationError{Field: "url", Reason: "link must be an http or https URL"}
		}
	}
	if r.Type != "" && !contains(ResourceTypes, r.Type) {
		return ValidationError{Field: "type", Reason: "unknown resource type '" + r.Type + "'"}
	}
	if r.Status != "" && !contains(ResourceStatuses, r.Status) {
		return ValidationError{Field: "status", Reason: "unknown status '" + r.Status + "'"}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// AddResource validates and appends a resource, assigning an id when the
// caller did not provide one.
func (s *Store) AddResource(profile string, r Resource) (Resource, error) {
	if err := validateResource(r); err != nil {
		return Resource{}, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Title = strings.TrimSpace(r.Title)
	items, err := s.Resources(profile)
	if err != nil {
		return Resource{}, err
	}
	items = append(items, r)
	if err := s.saveResources(profile, items); err != nil {
		return Resource{}, err
	}
	return r, nil
}

// UpdateResource replaces the stored resource with the same id.
func (s *Store) UpdateResource(profile string, r Resource) error {
	if err := validateResource(r); err != nil {
		return err
	}
	items, err := s.Resources(profile)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == r.ID {
			r.Title = strings.TrimSpace(r.Title)
			items[i] = r
			return s.saveResources(profile, items)
		}
	}
	return InvalidOperationError{Op: "update resource", Reason: "resource does not exist"}
}

// DeleteResource removes a resource outright.
func (s *Store) DeleteResource(profile, id string) error {
	items, err := s.Resources(profile)
	if err != nil {
		return err
	}
	kept := items[:0]
	removed := false
	for _, r := range items {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return InvalidOperationError{Op: "delete resource", Reason: "resource does not exist"}
	}
	return s.saveResources(profile, kept)
}
