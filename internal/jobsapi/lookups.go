package jobsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LookupKind names a candidate filter dimension served by /candidat/{kind}.
type LookupKind string

const (
	LookupCity       LookupKind = "ville"
	LookupDepartment LookupKind = "departement"
	LookupRegion     LookupKind = "region"
	LookupContract   LookupKind = "contrat"
)

// LookupKinds lists the supported kinds in form order.
var LookupKinds = []LookupKind{LookupCity, LookupDepartment, LookupRegion, LookupContract}

// ParseLookupKind validates a kind coming from user input.
func ParseLookupKind(v string) (LookupKind, bool) {
	for _, k := range LookupKinds {
		if string(k) == v {
			return k, true
		}
	}
	return "", false
}

// Zone is the geographic grouping level of the aggregate endpoints.
type Zone string

const (
	ZoneCity       Zone = "ville"
	ZoneDepartment Zone = "departement"
	ZoneRegion     Zone = "region"
)

// ParseZone defaults to cities for unknown values.
func ParseZone(v string) Zone {
	switch Zone(strings.ToLower(strings.TrimSpace(v))) {
	case ZoneDepartment:
		return ZoneDepartment
	case ZoneRegion:
		return ZoneRegion
	default:
		return ZoneCity
	}
}

// ZoneCount is the number of offers located in one zone.
type ZoneCount struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int     `json:"count"`
}

// SkillCount is the number of offers requiring one skill.
type SkillCount struct {
	Skill  string `json:"skill"`
	Offers int    `json:"offers"`
}

// Lookup returns the labels for one filter dimension. The first element of each row is
// the usable label.
func (c *Client) Lookup(ctx context.Context, kind LookupKind) ([]string, error) {
	endpoint := "/candidat/" + string(kind)
	var payload struct {
		Data [][]any `json:"data"`
	}
	if err := c.getJSON(ctx, endpoint, endpoint, c.lookupTimeout, lookupSchema, &payload); err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(payload.Data))
	for _, row := range payload.Data {
		if len(row) == 0 {
			continue
		}
		if label, ok := labelOf(row[0]); ok {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

// Skills returns every known skill label.
func (c *Client) Skills(ctx context.Context) ([]string, error) {
	var payload []struct {
		Skill *string `json:"skill"`
	}
	if err := c.getJSON(ctx, "/skills/", "/skills/", c.lookupTimeout, skillsSchema, &payload); err != nil {
		return nil, err
	}

	skills := make([]string, 0, len(payload))
	for _, item := range payload {
		if item.Skill == nil {
			continue
		}
		if s := strings.TrimSpace(*item.Skill); s != "" {
			skills = append(skills, s)
		}
	}
	return skills, nil
}

// TopZones returns offer counts per zone with coordinates. Rows without a label or
// usable coordinates are dropped.
func (c *Client) TopZones(ctx context.Context, zone Zone) ([]ZoneCount, error) {
	if err := zone.validate(); err != nil {
		return nil, err
	}
	endpoint := "/top_" + string(zone)
	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := c.getJSON(ctx, endpoint, endpoint, c.lookupTimeout, aggregateSchema, &payload); err != nil {
		return nil, err
	}

	out := make([]ZoneCount, 0, len(payload.Data))
	for _, row := range payload.Data {
		label, ok := labelOf(row[string(zone)])
		if !ok {
			continue
		}
		lat, okLat := numberOf(row["latitude"])
		lon, okLon := numberOf(row["longitude"])
		if !okLat || !okLon {
			continue
		}
		count, _ := numberOf(row["count"])
		out = append(out, ZoneCount{Label: label, Latitude: lat, Longitude: lon, Count: int(count)})
	}
	return out, nil
}

// TopSkills returns offer counts per skill in API order.
func (c *Client) TopSkills(ctx context.Context) ([]SkillCount, error) {
	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := c.getJSON(ctx, "/top_skills", "/top_skills", c.lookupTimeout, aggregateSchema, &payload); err != nil {
		return nil, err
	}

	out := make([]SkillCount, 0, len(payload.Data))
	for _, row := range payload.Data {
		skill, ok := labelOf(row["SKILL"])
		if !ok {
			continue
		}
		offers, _ := numberOf(row["NB_OFFRES"])
		out = append(out, SkillCount{Skill: skill, Offers: int(offers)})
	}
	return out, nil
}

func labelOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

func numberOf(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (k LookupKind) String() string { return string(k) }

func (z Zone) String() string { return string(z) }

// Label returns the French heading for a zone.
func (z Zone) Label() string {
	switch z {
	case ZoneDepartment:
		return "Départements"
	case ZoneRegion:
		return "Régions"
	default:
		return "Villes"
	}
}

func (z Zone) validate() error {
	switch z {
	case ZoneCity, ZoneDepartment, ZoneRegion:
		return nil
	}
	return fmt.Errorf("unknown zone %q", string(z))
}
