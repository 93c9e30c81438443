package handler

import "github.com/devcamper/bootcamp-api/internal/core/domain"

type createBootcampRequest struct {
	Name          string   `json:"name" validate:"required,max=50"`
	Description   string   `json:"description" validate:"required,max=500"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Phone         string   `json:"phone" validate:"omitempty,max=20"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address" validate:"required"`
	Careers       []string `json:"careers" validate:"required,min=1,dive,career"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
	JobGuarantee  bool     `json:"job_guarantee"`
	AcceptGi      bool     `json:"accept_gi"`
}

func (r createBootcampRequest) toDomain() *domain.Bootcamp {
	return &domain.Bootcamp{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		Careers:       r.Careers,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
		JobGuarantee:  r.JobGuarantee,
		AcceptGi:      r.AcceptGi,
	}
}

// updateBootcampRequest carries a partial update; nil fields are left alone.
type updateBootcampRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=50"`
	Description   *string  `json:"description" validate:"omitempty,max=500"`
	Website       *string  `json:"website" validate:"omitempty,url"`
	Phone         *string  `json:"phone" validate:"omitempty,max=20"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Address       *string  `json:"address"`
	Careers       []string `json:"careers" validate:"omitempty,dive,career"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"job_assistance"`
	JobGuarantee  *bool    `json:"job_guarantee"`
	AcceptGi      *bool    `json:"accept_gi"`
}

func (r updateBootcampRequest) apply(b *domain.Bootcamp) {
	setIf(&b.Name, r.Name)
	setIf(&b.Description, r.Description)
	setIf(&b.Website, r.Website)
	setIf(&b.Phone, r.Phone)
	setIf(&b.Email, r.Email)
	setIf(&b.Address, r.Address)
	setIf(&b.Housing, r.Housing)
	setIf(&b.JobAssistance, r.JobAssistance)
	setIf(&b.JobGuarantee, r.JobGuarantee)
	setIf(&b.AcceptGi, r.AcceptGi)
	if r.Careers != nil {
		b.Careers = r.Careers
	}
}

type createCourseRequest struct {
	Title                string  `json:"title" validate:"required"`
	Description          string  `json:"description" validate:"required"`
	Weeks                int     `json:"weeks" validate:"required,gte=1"`
	Tuition              float64 `json:"tuition" validate:"required,gte=0"`
	MinimumSkill         string  `json:"minimum_skill" validate:"required,skill"`
	ScholarshipAvailable bool    `json:"scholarship_available"`
}

func (r createCourseRequest) toDomain() *domain.Course {
	return &domain.Course{
		Title:                r.Title,
		Description:          r.Description,
		Weeks:                r.Weeks,
		Tuition:              r.Tuition,
		MinimumSkill:         domain.SkillLevel(r.MinimumSkill),
		ScholarshipAvailable: r.ScholarshipAvailable,
	}
}

type updateCourseRequest struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *int     `json:"weeks" validate:"omitempty,gte=1"`
	Tuition              *float64 `json:"tuition" validate:"omitempty,gte=0"`
	MinimumSkill         *string  `json:"minimum_skill" validate:"omitempty,skill"`
	ScholarshipAvailable *bool    `json:"scholarship_available"`
}

func (r updateCourseRequest) apply(c *domain.Course) {
	setIf(&c.Title, r.Title)
	setIf(&c.Description, r.Description)
	setIf(&c.Weeks, r.Weeks)
	setIf(&c.Tuition, r.Tuition)
	setIf(&c.ScholarshipAvailable, r.ScholarshipAvailable)
	if r.MinimumSkill != nil {
		c.MinimumSkill = domain.SkillLevel(*r.MinimumSkill)
	}
}

type createReviewRequest struct {
	Title  string `json:"title" validate:"required,max=100"`
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=10"`
}

type updateReviewRequest struct {
	Title  *string `json:"title" validate:"omitempty,max=100"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=10"`
}

func (r updateReviewRequest) apply(rv *domain.Review) {
	setIf(&rv.Title, r.Title)
	setIf(&rv.Text, r.Text)
	setIf(&rv.Rating, r.Rating)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
