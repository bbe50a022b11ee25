package main

import (
	"errors"
	"fmt"

	"github.com/garyjia/billed/internal/application/service"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/pkg/utils"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var role, email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in, creating the account when it does not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := entity.ParseRole(role)
			if err != nil {
				return err
			}
			if err := utils.ValidateEmail(email); err != nil {
				return err
			}

			form := entity.NewLoginForm(parsed)
			form.Email = email
			form.Password = password

			sessions := a.services().Session
			submit := sessions.SubmitEmployee
			if parsed == entity.RoleAdmin {
				submit = sessions.SubmitAdmin
			}

			result, err := submit(cmd.Context(), form)
			a.renderer.LoginError(form)
			if err != nil {
				return err
			}
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Connected as %s (%s)\n", email, parsed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", entity.RoleEmployee.String(), "Employee or Admin")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.services().Session.Logout(cmd.Context())
		},
	}
}

// requireSession returns the stored session, checking its role when one is given
func (a *app) requireSession(role entity.Role) (*entity.Session, error) {
	session, err := service.LoadSession(a.container.SessionStore())
	if errors.Is(err, entity.ErrNoSession) {
		return nil, fmt.Errorf("not logged in, run \"billed login\" first")
	}
	if err != nil {
		return nil, err
	}
	if role != "" && session.Role != role {
		return nil, fmt.Errorf("this command needs an %s session, logged in as %s", role, session.Role)
	}
	return session, nil
}
