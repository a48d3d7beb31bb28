package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linkudp/linkudp-cli/core"
	"github.com/linkudp/linkudp-cli/core/user"
)

func newLoginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión con tu correo y contraseña",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := user.Credentials{Email: email}
			var err error
			if creds.Email == "" {
				if creds.Email, err = a.promptLine("Email: "); err != nil {
					return err
				}
			}
			if creds.Password, err = a.promptPassword("Contraseña: "); err != nil {
				return err
			}

			profile, err := a.session.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			if profile != nil {
				fmt.Fprintf(a.out, "Sesión iniciada como %s (%s)\n", profile.User.FullName, profile.User.Email)
			} else {
				fmt.Fprintln(a.out, "Sesión iniciada.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "correo institucional")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var (
		fullName string
		email    string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Crea una cuenta de estudiante, tutor o ambos",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := user.RegisterData{
				FullName: fullName,
				Email:    email,
				Role:     user.Role(strings.ToUpper(strings.TrimSpace(role))),
			}
			var err error
			if data.FullName == "" {
				if data.FullName, err = a.promptLine("Nombre completo: "); err != nil {
					return err
				}
			}
			if data.Email == "" {
				if data.Email, err = a.promptLine("Email: "); err != nil {
					return err
				}
			}

			pwd, err := a.promptPassword("Contraseña: ")
			if err != nil {
				return err
			}
			confirm, err := a.promptPassword("Confirma la contraseña: ")
			if err != nil {
				return err
			}
			if pwd != confirm {
				return core.NewValidationError(errors.New("Las contraseñas no coinciden."),
					core.FieldError{Field: "password", Error: "Las contraseñas no coinciden."})
			}
			data.Password = pwd

			profile, err := a.session.Register(cmd.Context(), data)
			if err != nil {
				return err
			}
			if profile != nil {
				fmt.Fprintf(a.out, "Cuenta creada para %s (%s)\n", profile.User.FullName, profile.User.Email)
			} else {
				fmt.Fprintln(a.out, "Cuenta creada.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&fullName, "name", "n", "", "nombre completo")
	cmd.Flags().StringVarP(&email, "email", "e", "", "correo institucional")
	cmd.Flags().StringVarP(&role, "role", "r", string(user.RoleStudent), "STUDENT, TUTOR o BOTH")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión local",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Sesión cerrada.")
			return nil
		},
	}
}
