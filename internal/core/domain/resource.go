package domain

import "time"

// Owned is implemented by every record that belongs to a single user.
type Owned interface {
	OwnerID() string
}

// SkillLevel is the minimum skill a course expects.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// Careers are the tracks a bootcamp may advertise.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// ValidCareer reports whether c is one of Careers.
func ValidCareer(c string) bool {
	for _, known := range Careers {
		if c == known {
			return true
		}
	}
	return false
}

// Location is a geocoded point stored as GeoJSON.
type Location struct {
	Type             string    `json:"type" bson:"type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"` // [lng, lat]
	FormattedAddress string    `json:"formatted_address,omitempty" bson:"formatted_address,omitempty"`
	Street           string    `json:"street,omitempty" bson:"street,omitempty"`
	City             string    `json:"city,omitempty" bson:"city,omitempty"`
	State            string    `json:"state,omitempty" bson:"state,omitempty"`
	Zipcode          string    `json:"zipcode,omitempty" bson:"zipcode,omitempty"`
	Country          string    `json:"country,omitempty" bson:"country,omitempty"`
}

// NewPoint returns a GeoJSON point; GeoJSON orders coordinates lng first.
func NewPoint(lat, lng float64) *Location {
	return &Location{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Bootcamp is the top-level owned record; courses and reviews hang off it.
type Bootcamp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address"`
	Location      *Location `json:"location,omitempty"`
	Careers       []string  `json:"careers"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"job_assistance"`
	JobGuarantee  bool      `json:"job_guarantee"`
	AcceptGi      bool      `json:"accept_gi"`
	AverageRating float64   `json:"average_rating,omitempty"`
	AverageCost   float64   `json:"average_cost,omitempty"`
	UserID        string    `json:"user"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Bootcamp) OwnerID() string { return b.UserID }

// Course belongs to a bootcamp and is owned by the user who added it.
type Course struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Weeks                int        `json:"weeks"`
	Tuition              float64    `json:"tuition"`
	MinimumSkill         SkillLevel `json:"minimum_skill"`
	ScholarshipAvailable bool       `json:"scholarship_available"`
	BootcampID           string     `json:"bootcamp"`
	UserID               string     `json:"user"`
	CreatedAt            time.Time  `json:"created_at"`
}

func (c *Course) OwnerID() string { return c.UserID }

// Review is a rating a user left on a bootcamp.
type Review struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	BootcampID string    `json:"bootcamp"`
	UserID     string    `json:"user"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *Review) OwnerID() string { return r.UserID }
