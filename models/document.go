package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpeakerRole is the category of the speaker delivering a statement,
// taken from the session metadata spreadsheet.
type SpeakerRole int

const (
	RoleUnknown SpeakerRole = iota
	RoleHeadOfState
	RoleMinister
	RoleRepresentative
)

func (r SpeakerRole) String() string {
	switch r {
	case RoleHeadOfState:
		return "head_of_state"
	case RoleMinister:
		return "minister"
	case RoleRepresentative:
		return "representative"
	default:
		return "unknown"
	}
}

// ParseSpeakerRole maps the free-form post descriptions used in the
// spreadsheet onto the three enumerated roles.
func ParseSpeakerRole(post string) SpeakerRole {
	p := strings.ToLower(strings.TrimSpace(post))
	switch {
	case p == "":
		return RoleUnknown
	// Deputies and vice-heads rank with ministers, so check those markers
	// before the head-of-state titles they often embed ("Vice President").
	case strings.Contains(p, "deputy") || strings.Contains(p, "vice"):
		return RoleMinister
	case strings.Contains(p, "president") || strings.Contains(p, "prime minister") ||
		strings.Contains(p, "chancellor") || strings.Contains(p, "head of state") ||
		strings.Contains(p, "head of government") || strings.Contains(p, "king") ||
		strings.Contains(p, "emir") || strings.Contains(p, "sultan"):
		return RoleHeadOfState
	case strings.Contains(p, "minister"):
		return RoleMinister
	default:
		return RoleRepresentative
	}
}

// Document is one diplomatic statement: the raw transcript text plus the
// metadata encoded in its filename and the speaker spreadsheet.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CountryCode string             `bson:"country_code" json:"country_code"`
	Session     int                `bson:"session" json:"session"`
	Year        int                `bson:"year" json:"year"`
	Role        SpeakerRole        `bson:"role" json:"role"`
	RawText     string             `bson:"raw_text" json:"raw_text"`
	TokenCount  int                `bson:"token_count" json:"token_count"`
	CreatedAt   primitive.DateTime `bson:"created_at" json:"created_at"`
	UpdatedAt   primitive.DateTime `bson:"updated_at" json:"updated_at"`
}

// Key is the identity used for ingest dedup, e.g. "USA_71_2016".
func (d *Document) Key() string {
	return DocumentKey(d.CountryCode, d.Session, d.Year)
}

func DocumentKey(country string, session, year int) string {
	return fmt.Sprintf("%s_%d_%d", country, session, year)
}
