// Package catalog holds the fixed reference data shared by every screen:
// supported schools, post categories and help FAQs.
package catalog

import (
	"strings"

	"github.com/mi-raf/rule-look/internal/models"
)

const ContactEmail = "support@rulelook.com"

type (
	Catalog struct {
		schools    []models.School
		categories []CategoryInfo
		faqs       []models.FAQ
	}

	CategoryInfo struct {
		Category models.Category `json:"category"`
		Label    string          `json:"label"`
	}
)

// New copies the given slices so later mutation by the caller does not leak in.
func New(schools []models.School, categories []CategoryInfo, faqs []models.FAQ) *Catalog {
	return &Catalog{
		schools:    append([]models.School(nil), schools...),
		categories: append([]CategoryInfo(nil), categories...),
		faqs:       append([]models.FAQ(nil), faqs...),
	}
}

func Default() *Catalog {
	return New(defaultSchools, defaultCategories, defaultFAQs)
}

func (c *Catalog) Schools() []models.School {
	return append([]models.School(nil), c.schools...)
}

// SearchSchools matches query as a case-insensitive substring of the English
// or Korean school name. An empty query returns every school.
func (c *Catalog) SearchSchools(query string) []models.School {
	q := strings.ToLower(strings.TrimSpace(query))
	res := make([]models.School, 0, len(c.schools))
	for _, s := range c.schools {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Korean), q) {
			res = append(res, s)
		}
	}
	return res
}

// HasSchool accepts either the English or the Korean name.
func (c *Catalog) HasSchool(name string) bool {
	_, ok := c.School(name)
	return ok
}

func (c *Catalog) School(name string) (models.School, bool) {
	for _, s := range c.schools {
		if s.Name == name || s.Korean == name {
			return s, true
		}
	}
	return models.School{}, false
}

func (c *Catalog) Categories() []CategoryInfo {
	return append([]CategoryInfo(nil), c.categories...)
}

func (c *Catalog) HasCategory(cat models.Category) bool {
	for _, ci := range c.categories {
		if ci.Category == cat {
			return true
		}
	}
	return false
}

func (c *Catalog) FAQs() []models.FAQ {
	return append([]models.FAQ(nil), c.faqs...)
}

func (c *Catalog) FAQ(id int) (models.FAQ, bool) {
	for _, f := range c.faqs {
		if f.Id == id {
			return f, true
		}
	}
	return models.FAQ{}, false
}
