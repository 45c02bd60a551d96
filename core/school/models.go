package school

import (
	"strconv"

	"github.com/trezcool/schooladmin/core"
)

// Student statuses
const (
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
	StatusGraduated = "Graduated"
	StatusSuspended = "Suspended"
	StatusExpelled  = "Expelled"
)

var StudentStatuses = []string{StatusActive, StatusInactive, StatusGraduated, StatusSuspended, StatusExpelled}

// SectionNames are the allowed section names.
var SectionNames = []string{"A", "B", "C", "D"}

type (
	Course struct {
		ID           string  `json:"course_id"`
		Code         string  `json:"course_code" validate:"required"`
		Name         string  `json:"course_name" validate:"required"`
		ProgramID    string  `json:"program_id" validate:"required"`
		ProgramName  string  `json:"program_name,omitempty"`
		Units        float64 `json:"units" validate:"gte=0"`
		Detail       string  `json:"course_detail"`
		Prerequisite string  `json:"prerequisite,omitempty"`
	}

	Student struct {
		ID        string `json:"student_id"`
		Name      string `json:"name" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		ProgramID string `json:"program_id,omitempty"`
		Program   string `json:"program,omitempty"`
		SectionID string `json:"section_id,omitempty"`
		Section   string `json:"section,omitempty"`
		YearLevel int    `json:"year_level" validate:"gte=1,lte=4"`
		Status    string `json:"status,omitempty" validate:"omitempty,studentstatus"`
	}

	Teacher struct {
		ID             string `json:"teacher_id"`
		EmployeeID     string `json:"employee_id" validate:"required,alphanum_"`
		Name           string `json:"name" validate:"required"`
		Email          string `json:"email" validate:"required,email"`
		Phone          string `json:"phone,omitempty"`
		Department     string `json:"department" validate:"required"`
		Specialization string `json:"specialization,omitempty"`
		ProgramID      string `json:"program_id,omitempty"`
	}

	Section struct {
		ID             string `json:"section_id"`
		Name           string `json:"section_name" validate:"required,sectionname"`
		YearLevel      int    `json:"year_level" validate:"gte=1,lte=4"`
		Course         string `json:"course,omitempty"`
		ProgramID      string `json:"program_id" validate:"required"`
		TeacherID      string `json:"teacher_id,omitempty"`
		MaxStudents    int    `json:"max_students" validate:"gte=0"`
		CurrentStudent int    `json:"current_student" validate:"gte=0,ltefield=MaxStudents"`
		Schedule       string `json:"schedule,omitempty"`
		Room           string `json:"room,omitempty"`
	}

	Program struct {
		ID         string `json:"program_id"`
		Name       string `json:"program_name" validate:"required"`
		Details    string `json:"program_details"`
		ReqCredits int    `json:"req_credits" validate:"gte=0"`
	}

	// Stats are the dashboard counters.
	Stats struct {
		Students int `json:"Total Students"`
		Teachers int `json:"Total Teachers"`
		Courses  int `json:"Total Courses"`
	}
)

func numberError(key string) error {
	return core.NewValidationError(nil, core.FieldError{Field: key, Error: "must be a number"})
}

func unknownField(key string) error {
	return core.NewValidationError(nil, core.FieldError{Field: key, Error: "unknown field"})
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// Course

func (c Course) RecordID() string { return c.ID }
func (c *Course) SetID(id string) { c.ID = id }

func (c Course) Field(key string) string {
	switch key {
	case "course_id":
		return c.ID
	case "course_code":
		return c.Code
	case "course_name":
		return c.Name
	case "program_id":
		return c.ProgramID
	case "program_name":
		return c.ProgramName
	case "units":
		return formatFloat(c.Units)
	case "course_detail":
		return c.Detail
	case "prerequisite":
		return c.Prerequisite
	}
	return ""
}

func (c *Course) SetField(key, value string) error {
	switch key {
	case "course_code":
		c.Code = value
	case "course_name":
		c.Name = value
	case "program_id":
		c.ProgramID = value
	case "program_name":
		c.ProgramName = value
	case "units":
		f, err := strconv.ParseFloat(core.CleanString(value), 64)
		if err != nil {
			return numberError(key)
		}
		c.Units = f
	case "course_detail":
		c.Detail = value
	case "prerequisite":
		c.Prerequisite = value
	default:
		return unknownField(key)
	}
	return nil
}

// Student

func (s Student) RecordID() string { return s.ID }
func (s *Student) SetID(id string) { s.ID = id }

func (s Student) Field(key string) string {
	switch key {
	case "student_id":
		return s.ID
	case "name":
		return s.Name
	case "email":
		return s.Email
	case "program_id":
		return s.ProgramID
	case "program":
		return s.Program
	case "section_id":
		return s.SectionID
	case "section":
		return s.Section
	case "year_level":
		return strconv.Itoa(s.YearLevel)
	case "status":
		return s.Status
	}
	return ""
}

func (s *Student) SetField(key, value string) error {
	switch key {
	case "name":
		s.Name = value
	case "email":
		s.Email = core.CleanString(value, true /* lower */)
	case "program_id":
		s.ProgramID = value
	case "program":
		s.Program = value
	case "section_id":
		s.SectionID = value
	case "section":
		s.Section = value
	case "year_level":
		n, err := strconv.Atoi(core.CleanString(value))
		if err != nil {
			return numberError(key)
		}
		s.YearLevel = n
	case "status":
		s.Status = value
	default:
		return unknownField(key)
	}
	return nil
}

// Teacher

func (t Teacher) RecordID() string { return t.ID }
func (t *Teacher) SetID(id string) { t.ID = id }

func (t Teacher) Field(key string) string {
	switch key {
	case "teacher_id":
		return t.ID
	case "employee_id":
		return t.EmployeeID
	case "name":
		return t.Name
	case "email":
		return t.Email
	case "phone":
		return t.Phone
	case "department":
		return t.Department
	case "specialization":
		return t.Specialization
	case "program_id":
		return t.ProgramID
	}
	return ""
}

func (t *Teacher) SetField(key, value string) error {
	switch key {
	case "employee_id":
		t.EmployeeID = value
	case "name":
		t.Name = value
	case "email":
		t.Email = core.CleanString(value, true /* lower */)
	case "phone":
		t.Phone = value
	case "department":
		t.Department = value
	case "specialization":
		t.Specialization = value
	case "program_id":
		t.ProgramID = value
	default:
		return unknownField(key)
	}
	return nil
}

// Section

func (s Section) RecordID() string { return s.ID }
func (s *Section) SetID(id string) { s.ID = id }

func (s Section) Field(key string) string {
	switch key {
	case "section_id":
		return s.ID
	case "section_name":
		return s.Name
	case "year_level":
		return strconv.Itoa(s.YearLevel)
	case "course":
		return s.Course
	case "program_id":
		return s.ProgramID
	case "teacher_id":
		return s.TeacherID
	case "max_students":
		return strconv.Itoa(s.MaxStudents)
	case "current_student":
		return strconv.Itoa(s.CurrentStudent)
	case "schedule":
		return s.Schedule
	case "room":
		return s.Room
	}
	return ""
}

func (s *Section) SetField(key, value string) error {
	atoi := func(dst *int) error {
		n, err := strconv.Atoi(core.CleanString(value))
		if err != nil {
			return numberError(key)
		}
		*dst = n
		return nil
	}
	switch key {
	case "section_name":
		s.Name = core.CleanString(value)
	case "year_level":
		return atoi(&s.YearLevel)
	case "course":
		s.Course = value
	case "program_id":
		s.ProgramID = value
	case "teacher_id":
		s.TeacherID = value
	case "max_students":
		return atoi(&s.MaxStudents)
	case "current_student":
		return atoi(&s.CurrentStudent)
	case "schedule":
		s.Schedule = value
	case "room":
		s.Room = value
	default:
		return unknownField(key)
	}
	return nil
}

// Program

func (p Program) RecordID() string { return p.ID }
func (p *Program) SetID(id string) { p.ID = id }

func (p Program) Field(key string) string {
	switch key {
	case "program_id":
		return p.ID
	case "program_name":
		return p.Name
	case "program_details":
		return p.Details
	case "req_credits":
		return strconv.Itoa(p.ReqCredits)
	}
	return ""
}

func (p *Program) SetField(key, value string) error {
	switch key {
	case "program_name":
		p.Name = value
	case "program_details":
		p.Details = value
	case "req_credits":
		n, err := strconv.Atoi(core.CleanString(value))
		if err != nil {
			return numberError(key)
		}
		p.ReqCredits = n
	default:
		return unknownField(key)
	}
	return nil
}
