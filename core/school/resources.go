// Package school holds the school records and the collection configuration of each of them.
package school

import "github.com/trezcool/schooladmin/core/collection"

// Resource names
const (
	CourseResource  = "course"
	StudentResource = "student"
	TeacherResource = "teacher"
	SectionResource = "section"
	ProgramResource = "program"
)

// ResourceNames lists every resource, in menu order.
var ResourceNames = []string{TeacherResource, StudentResource, SectionResource, CourseResource, ProgramResource}

func validateWith[T any](val *Validator) func(T) error {
	if val == nil {
		return nil
	}
	return func(rec T) error { return val.Struct(rec) }
}

// Courses configures the courses collection. val may be nil to skip client-side validation.
func Courses(val *Validator) collection.Resource[Course] {
	return collection.Resource[Course]{
		Name:       CourseResource,
		Plural:     "courses",
		Title:      "Course",
		NameField:  "course_name",
		ListPath:   "/admin/get_all_course",
		CreatePath: "/admin/create/course",
		UpdatePath: "/admin/course/{id}",
		DeletePath: "/admin/course/{id}",
		Fields: []collection.Field{
			{Key: "course_id", Label: "ID"},
			{Key: "course_code", Label: "Course Code"},
			{Key: "course_name", Label: "Course Name"},
			{Key: "program_id", Label: "Program ID"},
			{Key: "program_name", Label: "Program"},
			{Key: "units", Label: "Units"},
			{Key: "course_detail", Label: "Description"},
			{Key: "prerequisite", Label: "Prerequisite"},
		},
		Filters:    []string{"program_name"},
		EditFields: []string{"course_code", "course_name", "program_id", "units", "course_detail", "prerequisite"},
		Set:        (*Course).SetField,
		Validate:   validateWith[Course](val),
	}
}

// Students configures the students collection.
func Students(val *Validator) collection.Resource[Student] {
	return collection.Resource[Student]{
		Name:       StudentResource,
		Plural:     "students",
		Title:      "Student",
		NameField:  "name",
		ListPath:   "/admin/get_all_student",
		CreatePath: "/admin/student/create",
		UpdatePath: "/admin/update_student/{id}",
		DeletePath: "/admin/delete_student/{id}",
		Fields: []collection.Field{
			{Key: "student_id", Label: "Student ID"},
			{Key: "name", Label: "Name"},
			{Key: "program", Label: "Program"},
			{Key: "year_level", Label: "Year Level"},
			{Key: "section", Label: "Section"},
			{Key: "email", Label: "Email"},
			{Key: "status", Label: "Status"},
			{Key: "program_id", Label: "Program ID"},
			{Key: "section_id", Label: "Section ID"},
		},
		Filters:    []string{"program", "year_level", "status"},
		EditFields: []string{"name", "email", "program_id", "section_id", "year_level", "status"},
		Set:        (*Student).SetField,
		Validate:   validateWith[Student](val),
	}
}

// Teachers configures the teachers collection.
func Teachers(val *Validator) collection.Resource[Teacher] {
	return collection.Resource[Teacher]{
		Name:       TeacherResource,
		Plural:     "teachers",
		Title:      "Teacher",
		NameField:  "name",
		ListPath:   "/admin/get_all_teacher",
		CreatePath: "/admin/teacher/create",
		UpdatePath: "/admin/teacher/{id}",
		DeletePath: "/admin/teacher/{id}",
		Fields: []collection.Field{
			{Key: "teacher_id", Label: "ID"},
			{Key: "employee_id", Label: "Employee ID"},
			{Key: "name", Label: "Name"},
			{Key: "department", Label: "Department"},
			{Key: "email", Label: "Email"},
			{Key: "phone", Label: "Phone"},
			{Key: "specialization", Label: "Specialization"},
			{Key: "program_id", Label: "Program ID"},
		},
		Filters:    []string{"department"},
		EditFields: []string{"employee_id", "name", "department", "email", "phone", "specialization", "program_id"},
		Set:        (*Teacher).SetField,
		Validate:   validateWith[Teacher](val),
	}
}

// Sections configures the sections collection.
func Sections(val *Validator) collection.Resource[Section] {
	return collection.Resource[Section]{
		Name:       SectionResource,
		Plural:     "sections",
		Title:      "Section",
		NameField:  "section_name",
		ListPath:   "/admin/get_all_section",
		CreatePath: "/admin/section/create",
		UpdatePath: "/admin/section/{id}",
		DeletePath: "/admin/section/{id}",
		Fields: []collection.Field{
			{Key: "section_id", Label: "ID"},
			{Key: "section_name", Label: "Section Name"},
			{Key: "year_level", Label: "Year Level"},
			{Key: "course", Label: "Course"},
			{Key: "current_student", Label: "Students"},
			{Key: "max_students", Label: "Max Students"},
			{Key: "schedule", Label: "Schedule"},
			{Key: "room", Label: "Room"},
			{Key: "program_id", Label: "Program ID"},
			{Key: "teacher_id", Label: "Teacher ID"},
		},
		Filters: []string{"year_level"},
		EditFields: []string{
			"section_name", "year_level", "course", "program_id", "teacher_id",
			"max_students", "current_student", "schedule", "room",
		},
		Set:      (*Section).SetField,
		Validate: validateWith[Section](val),
	}
}

// Programs configures the programs collection, the reference data behind program_id.
func Programs(val *Validator) collection.Resource[Program] {
	return collection.Resource[Program]{
		Name:       ProgramResource,
		Plural:     "programs",
		Title:      "Program",
		NameField:  "program_name",
		ListPath:   "/admin/get_all_program",
		CreatePath: "/admin/program/create",
		UpdatePath: "/admin/program/{id}",
		DeletePath: "/admin/program/{id}",
		Fields: []collection.Field{
			{Key: "program_id", Label: "ID"},
			{Key: "program_name", Label: "Program"},
			{Key: "program_details", Label: "Details"},
			{Key: "req_credits", Label: "Required Credits"},
		},
		EditFields: []string{"program_name", "program_details", "req_credits"},
		Set:        (*Program).SetField,
		Validate:   validateWith[Program](val),
	}
}

// StatsPath serves the dashboard counters.
const StatsPath = "/admin/get_all/stats"
