package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/artistlink/internal/config"
	"github.com/iliyamo/artistlink/internal/database"
	"github.com/iliyamo/artistlink/internal/model"
	"github.com/iliyamo/artistlink/internal/repository"
	"github.com/iliyamo/artistlink/internal/utils"
)

// operatorCreator is the part of the operator repository the command needs.
type operatorCreator interface {
	Create(ctx context.Context, o *model.Operator) error
}

type operatorOptions struct {
	email    string
	password string
	name     string
	role     string
}

func newOperatorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Manage dashboard operators",
	}
	cmd.AddCommand(newOperatorCreateCmd())
	return cmd
}

func newOperatorCreateCmd() *cobra.Command {
	var opts operatorOptions
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dashboard operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadDB()
			db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			op, err := createOperator(ctx, repository.NewOperatorRepo(db), opts, cfg.BcryptCost)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created operator %s (%s, %s)\n", op.ID, op.Email, op.Role)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.email, "email", "", "login email (required)")
	f.StringVar(&opts.password, "password", "", "initial password (required)")
	f.StringVar(&opts.name, "name", "", "display name")
	f.StringVar(&opts.role, "role", model.RoleEditor, "ADMIN or EDITOR")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func createOperator(ctx context.Context, store operatorCreator, opts operatorOptions, cost int) (*model.Operator, error) {
	email := strings.ToLower(strings.TrimSpace(opts.email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", opts.email)
	}
	if len(opts.password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	role := strings.ToUpper(strings.TrimSpace(opts.role))
	if role != model.RoleAdmin && role != model.RoleEditor {
		return nil, fmt.Errorf("role must be %s or %s", model.RoleAdmin, model.RoleEditor)
	}
	hash, err := utils.HashPassword(opts.password, cost)
	if err != nil {
		return nil, err
	}
	op := &model.Operator{Email: email, PasswordHash: hash, Role: role}
	if name := strings.TrimSpace(opts.name); name != "" {
		op.FullName = &name
	}
	if err := store.Create(ctx, op); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("operator %s already exists", email)
		}
		return nil, err
	}
	return op, nil
}
