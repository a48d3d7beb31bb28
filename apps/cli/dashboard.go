package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkudp/linkudp-cli/core/tutoring"
)

func newDashboardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Resumen de tu actividad en LinkUDP",
	}
	cmd.AddCommand(newDashboardStudentCmd(a), newDashboardTutorCmd(a))
	return cmd
}

func newDashboardStudentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "student",
		Short: "Tu perfil de estudiante y las tutorías disponibles",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			fmt.Fprintf(a.out, "Hola, %s\n", profile.User.FullName)
			if student, ok := profile.Student(); ok {
				renderStudentProfile(a.out, profile.User, student)
			} else {
				fmt.Fprintln(a.out, "Aún no completas tu perfil de estudiante: linkudp onboarding student")
			}

			list, err := a.api.Tutorings(cmd.Context())
			if err != nil {
				a.logger.Warn("tutoring list fetch failed", "error", err)
				fmt.Fprintln(a.out, "No se pudieron cargar las tutorías.")
				return nil
			}
			fmt.Fprintln(a.out, "\nTutorías disponibles:")
			renderTutorings(a.out, list)
			return nil
		},
	}
}

func newDashboardTutorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tutor",
		Short: "Tu perfil de tutor y tus tutorías publicadas",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			fmt.Fprintf(a.out, "Hola, %s\n", profile.User.FullName)
			if tutor, ok := profile.Tutor(); ok {
				renderTutorProfile(a.out, profile.User, tutor)
			} else {
				fmt.Fprintln(a.out, "Aún no completas tu perfil de tutor.")
			}

			list, err := a.api.Tutorings(cmd.Context())
			if err != nil {
				a.logger.Warn("tutoring list fetch failed", "error", err)
				fmt.Fprintln(a.out, "No se pudieron cargar las tutorías.")
				return nil
			}
			mine := make([]tutoring.Tutoring, 0, len(list))
			for _, t := range list {
				if t.Tutor.User.ID == profile.User.ID {
					mine = append(mine, t)
				}
			}
			fmt.Fprintln(a.out, "\nTus tutorías publicadas:")
			if len(mine) == 0 {
				fmt.Fprintln(a.out, "Todavía no publicas ninguna: linkudp tutoring create")
				return nil
			}
			renderTutorings(a.out, mine)
			return nil
		},
	}
}
