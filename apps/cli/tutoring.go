package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/linkudp/linkudp-cli/core/tutoring"
	"github.com/linkudp/linkudp-cli/services/linkapi"
)

func newTutoringCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutoring",
		Short: "Explora, publica y revisa tutorías",
	}
	cmd.AddCommand(
		newTutoringListCmd(a),
		newTutoringShowCmd(a),
		newTutoringCreateCmd(a),
		newTutoringBrowseCmd(a),
	)
	return cmd
}

func newTutoringListCmd(a *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las tutorías publicadas",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.api.Tutorings(cmd.Context())
			if err != nil {
				return err
			}
			matched := tutoring.Filter(list, search)
			if len(matched) == 0 {
				fmt.Fprintln(a.out, "No hay tutorías que coincidan.")
				return nil
			}
			renderTutorings(a.out, matched)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filtra por título, ramo o tutor")
	return cmd
}

func newTutoringShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra el detalle de una tutoría",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id %q inválido", args[0])
			}
			tut, err := a.api.GetTutoring(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, linkapi.ErrNotFound) {
					fmt.Fprintln(a.out, "Tutoría no encontrada.")
					return nil
				}
				return err
			}
			renderTutoring(a.out, tut)
			return nil
		},
	}
}

func newTutoringCreateCmd(a *app) *cobra.Command {
	var nt tutoring.NewTutoring

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publica una nueva tutoría",
		Example: `  linkudp tutoring create --title "Derivadas" --description "Repaso de cálculo I" \
    --course 3 --date 2026-09-15 --start 10:00 --end 12:00 --location "Biblioteca"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := a.requireToken()
			if err != nil {
				return err
			}
			if err := nt.Validate(); err != nil {
				return err
			}
			tut, err := a.api.CreateTutoring(cmd.Context(), tok, nt)
			if err != nil {
				return a.authError(err)
			}
			fmt.Fprintf(a.out, "Tutoría publicada (id %d).\n", tut.ID)
			renderTutoring(a.out, tut)
			return nil
		},
	}
	cmd.Flags().StringVar(&nt.Title, "title", "", "título")
	cmd.Flags().StringVar(&nt.Description, "description", "", "descripción")
	cmd.Flags().IntVar(&nt.CourseID, "course", 0, "id del ramo")
	cmd.Flags().StringVar(&nt.Date, "date", "", "fecha AAAA-MM-DD")
	cmd.Flags().StringVar(&nt.StartTime, "start", "", "hora de inicio HH:MM")
	cmd.Flags().StringVar(&nt.EndTime, "end", "", "hora de término HH:MM")
	cmd.Flags().StringVar(&nt.Location, "location", "", "lugar")
	return cmd
}

func newTutoringBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Explora las tutorías con filtro en vivo",
		Long: `Explora las tutorías con filtro en vivo. Escribe un término para filtrar
por título, ramo o tutor; una línea vacía muestra todo; /q sale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.api.Tutorings(cmd.Context())
			if err != nil {
				return err
			}
			renderTutorings(a.out, list)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// another process logging out should drop this view to the
			// logged-out rendering
			events, supported, err := a.session.WatchInvalidation(ctx)
			if err != nil {
				a.logger.Warn("token watch unavailable", "error", err)
			}
			if !supported {
				events = nil
			}

			lines := make(chan string)
			go func() {
				defer close(lines)
				sc := bufio.NewScanner(a.in)
				for sc.Scan() {
					select {
					case lines <- sc.Text():
					case <-ctx.Done():
						return
					}
				}
			}()

			for {
				fmt.Fprint(a.out, "filtro> ")
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-events:
					if tok, _ := a.tokens.Get(); tok == "" {
						fmt.Fprintln(a.out, "\nTu sesión terminó en otro proceso; sigues viendo la lista pública.")
					}
				case line, open := <-lines:
					if !open || line == "/q" {
						return nil
					}
					matched := tutoring.Filter(list, line)
					if len(matched) == 0 {
						fmt.Fprintln(a.out, "No hay tutorías que coincidan.")
						continue
					}
					renderTutorings(a.out, matched)
				}
			}
		},
	}
}
