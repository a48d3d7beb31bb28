package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkudp/linkudp-cli/core/user"
)

func newOnboardingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Completa tu perfil después de registrarte",
	}
	cmd.AddCommand(newOnboardingStudentCmd(a), newOnboardingTutorCmd(a))
	return cmd
}

func newOnboardingStudentCmd(a *app) *cobra.Command {
	var form studentForm

	cmd := &cobra.Command{
		Use:   "student",
		Short: "Completa tu perfil de estudiante",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.session.UpdateStudentProfile(cmd.Context(), form.payload())
			if err != nil {
				return a.authError(err)
			}
			fmt.Fprintln(a.out, "Perfil de estudiante guardado.")
			if student, ok := profile.Student(); ok {
				renderStudentProfile(a.out, profile.User, student)
			}
			return nil
		},
	}
	form.bind(cmd)
	return cmd
}

func newOnboardingTutorCmd(a *app) *cobra.Command {
	var form tutorForm

	cmd := &cobra.Command{
		Use:   "tutor",
		Short: "Completa tu perfil de tutor: ramos y disponibilidad",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.submitTutorProfile(cmd, &form)
		},
	}
	form.bind(cmd)
	return cmd
}

// submitTutorProfile runs the two-step tutor save shared by onboarding and
// profile editing. A missing name falls back to the current one so callers
// only pass what they change.
func (a *app) submitTutorProfile(cmd *cobra.Command, form *tutorForm) error {
	if _, err := a.requireToken(); err != nil {
		return err
	}

	general, specific, err := form.payloads()
	if err != nil {
		return err
	}
	if general.FullName == "" {
		current, err := a.session.CurrentProfile(cmd.Context())
		if err != nil {
			return err
		}
		if current == nil {
			return errSessionClosed
		}
		general.FullName = current.User.FullName
	}

	profile, err := a.session.UpdateTutorProfile(cmd.Context(), general, specific)
	if err != nil {
		return a.authError(err)
	}
	fmt.Fprintln(a.out, "Perfil de tutor guardado.")
	if tutor, ok := profile.Tutor(); ok {
		renderTutorProfile(a.out, profile.User, tutor)
	}
	return nil
}

// studentForm collects the student onboarding / profile-edit flags.
type studentForm struct {
	university string
	career     string
	year       int
	bio        string
	interests  []int
}

func (f *studentForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.university, "university", "", "universidad")
	cmd.Flags().StringVar(&f.career, "career", "", "carrera")
	cmd.Flags().IntVar(&f.year, "year", 0, "año de estudio (1-10)")
	cmd.Flags().StringVar(&f.bio, "bio", "", "presentación breve")
	cmd.Flags().IntSliceVar(&f.interests, "interest", nil, "id de ramo de interés (repetible)")
}

func (f *studentForm) payload() user.UpdateStudentProfile {
	return user.UpdateStudentProfile{
		University:        f.university,
		Career:            f.career,
		StudyYear:         f.year,
		Bio:               f.bio,
		InterestCourseIDs: f.interests,
	}
}
