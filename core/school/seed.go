package school

import (
	"context"

	"github.com/pkg/errors"
)

// Sample records served by a fresh reference API.
var (
	SamplePrograms = []Program{
		{ID: "prog-cs", Name: "Computer Science", Details: "BS Computer Science", ReqCredits: 150},
		{ID: "prog-it", Name: "Information Technology", Details: "BS Information Technology", ReqCredits: 145},
	}

	SampleCourses = []Course{
		{
			ID: "course-cs101", Code: "CS101", Name: "Introduction to Programming", ProgramID: "prog-cs",
			ProgramName: "Computer Science", Units: 3, Detail: "Basic programming concepts and problem-solving",
			Prerequisite: "None",
		},
		{
			ID: "course-it102", Code: "IT102", Name: "Data Structures", ProgramID: "prog-it",
			ProgramName: "Information Technology", Units: 3, Detail: "Introduction to data structures",
			Prerequisite: "CS101",
		},
	}

	SampleTeachers = []Teacher{
		{
			ID: "teacher-t001", EmployeeID: "T001", Name: "Joann Lopez", Email: "joann.lopez@example.com",
			Phone: "123-456-7890", Department: "Technopreneurship", Specialization: "Software Development",
			ProgramID: "prog-cs",
		},
	}

	SampleSections = []Section{
		{
			ID: "section-1a", Name: "A", YearLevel: 1, Course: "Computer Science", ProgramID: "prog-cs",
			TeacherID: "teacher-t001", MaxStudents: 40, CurrentStudent: 35, Schedule: "MWF 9:00-10:30 AM",
			Room: "Room 301",
		},
		{
			ID: "section-2b", Name: "B", YearLevel: 2, Course: "Information Technology", ProgramID: "prog-it",
			MaxStudents: 30, CurrentStudent: 28, Schedule: "TTh 1:00-2:30 PM", Room: "Room 202",
		},
	}

	SampleStudents = []Student{
		{
			ID: "S001", Name: "Zoltan Gutierrez", Email: "zg.student@example.com", ProgramID: "prog-cs",
			Program: "Computer Science", SectionID: "section-1a", Section: "A", YearLevel: 3, Status: StatusActive,
		},
	}
)

// Services groups the record services of every resource.
type Services struct {
	Courses  *Service[Course, *Course]
	Students *Service[Student, *Student]
	Teachers *Service[Teacher, *Teacher]
	Sections *Service[Section, *Section]
	Programs *Service[Program, *Program]
}

func NewServices(repo Repository, val *Validator) *Services {
	return &Services{
		Courses:  NewService[Course](repo, Courses(val), val),
		Students: NewService[Student](repo, Students(val), val),
		Teachers: NewService[Teacher](repo, Teachers(val), val),
		Sections: NewService[Section](repo, Sections(val), val),
		Programs: NewService[Program](repo, Programs(val), val),
	}
}

// SeedSamples stores the sample records that are not stored yet.
func (svcs *Services) SeedSamples(ctx context.Context) error {
	for _, seed := range []func(context.Context) error{
		func(ctx context.Context) error { return svcs.Programs.Seed(ctx, SamplePrograms...) },
		func(ctx context.Context) error { return svcs.Courses.Seed(ctx, SampleCourses...) },
		func(ctx context.Context) error { return svcs.Teachers.Seed(ctx, SampleTeachers...) },
		func(ctx context.Context) error { return svcs.Sections.Seed(ctx, SampleSections...) },
		func(ctx context.Context) error { return svcs.Students.Seed(ctx, SampleStudents...) },
	} {
		if err := seed(ctx); err != nil {
			return errors.Wrap(err, "seeding samples")
		}
	}
	return nil
}
