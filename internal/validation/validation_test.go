package validation_test

import (
	"testing"

	"emp-portal/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"john.doe@example.com",
		"x@y.z",
		"a@b.c.",
	}
	for _, s := range valid {
		assert.True(t, validation.Email(s), s)
	}

	invalid := []string{
		"",
		"a@b",
		"a.com",
		"@b.co",
		"a@",
		"a@@b.co",
		"a b@c.co",
		"a@b .co",
		"a@.co",
		"a@b.",
	}
	for _, s := range invalid {
		assert.False(t, validation.Email(s), s)
	}
}

func TestMobile(t *testing.T) {
	assert.True(t, validation.Mobile("1234567890"))
	assert.False(t, validation.Mobile("12345"))
	assert.False(t, validation.Mobile("12345678901"))
	assert.False(t, validation.Mobile("12345abcde"))
	assert.False(t, validation.Mobile(""))
}

func TestRequired(t *testing.T) {
	full := validation.RequiredFields{
		Name:        "Jane",
		Email:       "jane@example.com",
		Mobile:      "1234567890",
		Designation: "HR",
		Gender:      "Female",
		Courses:     []string{"MCA"},
	}
	assert.True(t, validation.Required(full))

	blankName := full
	blankName.Name = "   "
	assert.False(t, validation.Required(blankName))

	noCourses := full
	noCourses.Courses = nil
	assert.False(t, validation.Required(noCourses))

	missingGender := full
	missingGender.Gender = ""
	assert.False(t, validation.Required(missingGender))
}

func TestImageMIME(t *testing.T) {
	assert.True(t, validation.ImageMIME("image/jpeg"))
	assert.True(t, validation.ImageMIME("image/png"))
	assert.False(t, validation.ImageMIME("image/gif"))
	assert.False(t, validation.ImageMIME("application/pdf"))
	assert.False(t, validation.ImageMIME(""))
}
