package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/linkudp/linkudp-cli/core/tutoring"
	"github.com/linkudp/linkudp-cli/core/user"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func renderTutorings(out io.Writer, list []tutoring.Tutoring) {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tTÍTULO\tRAMO\tTUTOR\tHORARIO")
	for _, t := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Course.Name, t.Tutor.User.FullName, t.Schedule())
	}
	_ = w.Flush()
}

func renderTutoring(out io.Writer, t *tutoring.Tutoring) {
	w := newTable(out)
	fmt.Fprintf(w, "Título:\t%s\n", t.Title)
	fmt.Fprintf(w, "Ramo:\t%s\n", t.Course.Name)
	fmt.Fprintf(w, "Tutor:\t%s\n", t.Tutor.User.FullName)
	fmt.Fprintf(w, "Horario:\t%s\n", t.Schedule())
	if hours := t.DurationHours(); hours > 0 {
		fmt.Fprintf(w, "Duración:\t%.1f h\n", hours)
	}
	if t.Location != "" {
		fmt.Fprintf(w, "Lugar:\t%s\n", t.Location)
	}
	if t.Status != "" {
		fmt.Fprintf(w, "Estado:\t%s\n", t.Status)
	}
	if t.Description != "" {
		fmt.Fprintf(w, "Descripción:\t%s\n", t.Description)
	}
	if t.Notes != "" {
		fmt.Fprintf(w, "Notas:\t%s\n", t.Notes)
	}
	_ = w.Flush()
}

func renderStudentProfile(out io.Writer, usr user.User, student *user.StudentProfile) {
	w := newTable(out)
	fmt.Fprintf(w, "Nombre:\t%s\n", usr.FullName)
	fmt.Fprintf(w, "Email:\t%s\n", usr.Email)
	if student.University != "" {
		fmt.Fprintf(w, "Universidad:\t%s\n", student.University)
	}
	if student.Career != "" {
		fmt.Fprintf(w, "Carrera:\t%s\n", student.Career)
	}
	if student.StudyYear > 0 {
		fmt.Fprintf(w, "Año:\t%d\n", student.StudyYear)
	}
	if len(student.Interests) > 0 {
		names := make([]string, 0, len(student.Interests))
		for _, in := range student.Interests {
			names = append(names, in.CourseName)
		}
		fmt.Fprintf(w, "Intereses:\t%s\n", strings.Join(names, ", "))
	}
	_ = w.Flush()
}

func renderTutorProfile(out io.Writer, usr user.User, tutor *user.TutorProfile) {
	w := newTable(out)
	fmt.Fprintf(w, "Nombre:\t%s\n", usr.FullName)
	fmt.Fprintf(w, "Email:\t%s\n", usr.Email)
	if tutor.Bio != "" {
		fmt.Fprintf(w, "Bio:\t%s\n", tutor.Bio)
	}
	if tutor.TutoringContactEmail != "" {
		fmt.Fprintf(w, "Contacto:\t%s\n", tutor.TutoringContactEmail)
	}
	_ = w.Flush()

	if len(tutor.Courses) > 0 {
		fmt.Fprintln(out, "\nRamos que ofreces:")
		w = newTable(out)
		fmt.Fprintln(w, "ID\tRAMO\tNIVEL\tNOTA")
		for _, c := range tutor.Courses {
			grade := "-"
			if c.Grade != nil {
				grade = fmt.Sprintf("%.1f", *c.Grade)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.CourseID, c.CourseName, c.Level, grade)
		}
		_ = w.Flush()
	}

	if len(tutor.Availability) > 0 {
		fmt.Fprintln(out, "\nDisponibilidad:")
		renderAvailability(out, tutor.Availability)
	}
}

func renderAvailability(out io.Writer, blocks []user.AvailabilityBlock) {
	w := newTable(out)
	fmt.Fprintln(w, "DÍA\tDESDE\tHASTA")
	for _, b := range blocks {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.DayOfWeek, b.StartTime, b.EndTime)
	}
	_ = w.Flush()
}
