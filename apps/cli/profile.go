package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linkudp/linkudp-cli/core/user"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Muestra o edita tu perfil",
	}
	cmd.AddCommand(newProfileStudentCmd(a), newProfileTutorCmd(a), newAvailabilityCmd(a))
	return cmd
}

func newProfileStudentCmd(a *app) *cobra.Command {
	var form studentForm

	cmd := &cobra.Command{
		Use:   "student",
		Short: "Muestra tu perfil de estudiante; con flags lo edita",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return a.showProfile(cmd, func(p *user.Profile) bool {
					student, ok := p.Student()
					if ok {
						renderStudentProfile(a.out, p.User, student)
					}
					return ok
				})
			}

			profile, err := a.session.UpdateStudentProfile(cmd.Context(), form.payload())
			if err != nil {
				return a.authError(err)
			}
			fmt.Fprintln(a.out, "Perfil guardado.")
			if student, ok := profile.Student(); ok {
				renderStudentProfile(a.out, profile.User, student)
			}
			return nil
		},
	}
	form.bind(cmd)
	return cmd
}

func newProfileTutorCmd(a *app) *cobra.Command {
	var form tutorForm

	cmd := &cobra.Command{
		Use:   "tutor",
		Short: "Muestra tu perfil de tutor; con flags lo edita",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return a.showProfile(cmd, func(p *user.Profile) bool {
					tutor, ok := p.Tutor()
					if ok {
						renderTutorProfile(a.out, p.User, tutor)
					}
					return ok
				})
			}
			return a.submitTutorProfile(cmd, &form)
		},
	}
	form.bind(cmd)
	return cmd
}

func newAvailabilityCmd(a *app) *cobra.Command {
	var blocks []string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Reemplaza tus bloques semanales de disponibilidad",
		Example: `  linkudp profile availability --block "LUNES 10:00-12:00" --block "JUEVES 15:30-17:00"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireToken(); err != nil {
				return err
			}

			availability := make([]user.AvailabilityBlock, 0, len(blocks))
			for _, raw := range blocks {
				block, err := parseBlock(raw)
				if err != nil {
					return err
				}
				availability = append(availability, block)
			}

			// the tutor patch replaces courses too, so the current ones are
			// carried over untouched
			current, err := a.session.CurrentProfile(cmd.Context())
			if err != nil {
				return err
			}
			if current == nil {
				return errSessionClosed
			}
			tutor, ok := current.Tutor()
			if !ok {
				return fmt.Errorf("tu cuenta (%s) no tiene perfil de tutor", current.User.Role)
			}

			general := user.UpdateGeneralProfile{
				FullName: current.User.FullName,
				PhotoURL: current.User.PhotoURL,
				Bio:      tutor.Bio,
			}
			specific := user.UpdateTutorProfile{
				CVURL:                tutor.CVURL,
				ExperienceDetails:    tutor.ExperienceDetails,
				TutoringContactEmail: tutor.TutoringContactEmail,
				TutoringPhone:        tutor.TutoringPhone,
				Courses:              tutor.Courses,
				Availability:         availability,
			}

			profile, err := a.session.UpdateTutorProfile(cmd.Context(), general, specific)
			if err != nil {
				return a.authError(err)
			}
			fmt.Fprintln(a.out, "Disponibilidad guardada.")
			if tutor, ok := profile.Tutor(); ok {
				renderAvailability(a.out, tutor.Availability)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&blocks, "block", nil, `bloque "DIA HH:MM-HH:MM" (repetible)`)
	_ = cmd.MarkFlagRequired("block")
	return cmd
}

// showProfile fetches the current profile and hands it to a renderer; render
// reports whether the expected sub-profile was present.
func (a *app) showProfile(cmd *cobra.Command, render func(*user.Profile) bool) error {
	if _, err := a.requireToken(); err != nil {
		return err
	}
	profile, err := a.session.CurrentProfile(cmd.Context())
	if err != nil {
		return err
	}
	if profile == nil {
		return errSessionClosed
	}
	if !render(profile) {
		return fmt.Errorf("tu cuenta (%s) no tiene ese perfil; completa el onboarding primero", profile.User.Role)
	}
	return nil
}

// tutorForm collects the tutor onboarding / profile-edit flags.
type tutorForm struct {
	name       string
	photo      string
	bio        string
	cv         string
	experience string
	email      string
	phone      string
	courses    []string
}

func (f *tutorForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "nombre completo")
	cmd.Flags().StringVar(&f.photo, "photo", "", "URL de foto de perfil")
	cmd.Flags().StringVar(&f.bio, "bio", "", "presentación breve")
	cmd.Flags().StringVar(&f.cv, "cv", "", "URL del CV")
	cmd.Flags().StringVar(&f.experience, "experience", "", "detalle de experiencia")
	cmd.Flags().StringVar(&f.email, "contact-email", "", "correo de contacto para tutorías")
	cmd.Flags().StringVar(&f.phone, "phone", "", "teléfono de contacto")
	cmd.Flags().StringArrayVar(&f.courses, "course", nil, `ramo ofrecido "id:nivel[:nota]" (repetible)`)
}

func (f *tutorForm) payloads() (user.UpdateGeneralProfile, user.UpdateTutorProfile, error) {
	courses := make([]user.TutorCourse, 0, len(f.courses))
	for _, raw := range f.courses {
		course, err := parseCourse(raw)
		if err != nil {
			return user.UpdateGeneralProfile{}, user.UpdateTutorProfile{}, err
		}
		courses = append(courses, course)
	}
	general := user.UpdateGeneralProfile{
		FullName: f.name,
		PhotoURL: f.photo,
		Bio:      f.bio,
	}
	specific := user.UpdateTutorProfile{
		CVURL:                f.cv,
		ExperienceDetails:    f.experience,
		TutoringContactEmail: f.email,
		TutoringPhone:        f.phone,
		Courses:              courses,
	}
	return general, specific, nil
}

// parseCourse parses a --course value of the form "id:nivel[:nota]",
// e.g. "12:INTERMEDIO:6.5".
func parseCourse(s string) (user.TutorCourse, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return user.TutorCourse{}, fmt.Errorf("ramo %q inválido, usa \"id:nivel[:nota]\"", s)
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return user.TutorCourse{}, fmt.Errorf("ramo %q: id %q no es un número", s, parts[0])
	}
	course := user.TutorCourse{
		CourseID: id,
		Level:    strings.ToUpper(strings.TrimSpace(parts[1])),
	}
	if len(parts) == 3 {
		grade, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return user.TutorCourse{}, fmt.Errorf("ramo %q: nota %q no es un número", s, parts[2])
		}
		course.Grade = &grade
	}
	return course, nil
}

// parseBlock parses a --block value of the form "DIA HH:MM-HH:MM",
// e.g. "LUNES 10:00-12:00".
func parseBlock(s string) (user.AvailabilityBlock, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return user.AvailabilityBlock{}, fmt.Errorf("bloque %q inválido, usa \"DIA HH:MM-HH:MM\"", s)
	}
	window := strings.Split(fields[1], "-")
	if len(window) != 2 {
		return user.AvailabilityBlock{}, fmt.Errorf("bloque %q inválido, usa \"DIA HH:MM-HH:MM\"", s)
	}
	return user.AvailabilityBlock{
		DayOfWeek: user.DayOfWeek(strings.ToUpper(fields[0])),
		StartTime: window[0],
		EndTime:   window[1],
	}, nil
}
