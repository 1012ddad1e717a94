package models

import "time"

// ProfileUser is the populated owner shown inside a profile.
type ProfileUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile holds the editable, non-credential details of a user.
type Profile struct {
	ID             string       `json:"_id"`
	UserID         string       `json:"-"`
	User           *ProfileUser `json:"user"`
	Bio            string       `json:"bio"`
	Company        string       `json:"company"`
	Location       string       `json:"location"`
	Skills         []string     `json:"skills"`
	TargetRole     string       `json:"targetRole"`
	GraduationYear *int         `json:"graduationYear"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ProfileUpdate is a partial update. Name is applied to the owning User.
type ProfileUpdate struct {
	Name           *string   `json:"name,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Company        *string   `json:"company,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Skills         *[]string `json:"skills,omitempty"`
	TargetRole     *string   `json:"targetRole,omitempty"`
	GraduationYear *int      `json:"graduationYear,omitempty"`
}

// Apply copies the non-nil profile fields of u onto p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Company != nil {
		p.Company = *u.Company
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Skills != nil {
		p.Skills = append([]string(nil), (*u.Skills)...)
	}
	if u.TargetRole != nil {
		p.TargetRole = *u.TargetRole
	}
	if u.GraduationYear != nil {
		y := *u.GraduationYear
		p.GraduationYear = &y
	}
}
