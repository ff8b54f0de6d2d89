package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"wallet_admin/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.backend.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
			return nil
		},
	}
}

func (a *app) adminCmd() *cobra.Command {
	adminCmd := &cobra.Command{Use: "admin", Short: "Manage admin accounts"}

	var email, password string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user, err := a.backend.CreateAdmin(cmd.Context(), strings.ToLower(strings.TrimSpace(email)), string(hash))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "admin login email")
	createCmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(createCmd)
	return adminCmd
}

func (a *app) settingsCmd() *cobra.Command {
	settingsCmd := &cobra.Command{Use: "settings", Short: "Read and write platform settings"}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print all settings, or one setting's value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := a.backend.ListSettings(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return printJSON(cmd.OutOrStdout(), values)
			}
			v, ok := values[args[0]]
			if !ok {
				return fmt.Errorf("setting %q: %w", args[0], domain.ErrNotFound)
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}

	var adminID string
	setCmd := &cobra.Command{
		Use:   "set key=value [key=value...]",
		Short: "Write settings in one batch; values that are not valid JSON are stored as strings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(args)
			if err != nil {
				return err
			}
			keys, err := a.backend.UpsertSettings(cmd.Context(), values, adminID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"updated": keys})
		},
	}
	setCmd.Flags().StringVar(&adminID, "admin", "", "admin id recorded as the writer")

	settingsCmd.AddCommand(getCmd, setCmd)
	return settingsCmd
}

// parseAssignments turns key=value arguments into setting values
func parseAssignments(args []string) (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q: %w", arg, domain.ErrValidation)
		}
		if json.Valid([]byte(raw)) {
			values[key] = json.RawMessage(raw)
			continue
		}
		quoted, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		values[key] = quoted
	}
	return values, nil
}

func (a *app) txCmd() *cobra.Command {
	txCmd := &cobra.Command{Use: "tx", Short: "Inspect and complete transactions"}

	getCmd := &cobra.Command{
		Use:   "get <transaction-id>",
		Short: "Print one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txn, err := a.backend.GetTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), txn)
		},
	}

	var userID, adminID string
	completeCmd := &cobra.Command{
		Use:   "complete <transaction-id>",
		Short: "Credit a pending transaction to its owner's wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.backend.CompleteTransaction(cmd.Context(), domain.CompletionRequest{
				TransactionID: args[0],
				UserID:        userID,
				AdminUserID:   adminID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	completeCmd.Flags().StringVar(&userID, "user", "", "owner of the transaction")
	completeCmd.Flags().StringVar(&adminID, "admin", "", "admin id recorded as the completer")
	_ = completeCmd.MarkFlagRequired("user")
	_ = completeCmd.MarkFlagRequired("admin")

	txCmd.AddCommand(getCmd, completeCmd)
	return txCmd
}

func (a *app) ticketsCmd() *cobra.Command {
	ticketsCmd := &cobra.Command{Use: "tickets", Short: "List and resolve support tickets"}

	var status string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := a.backend.ListTickets(cmd.Context(), status)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tickets)
		},
	}
	listCmd.Flags().StringVar(&status, "status", "", "open or resolved")

	var adminID string
	resolveCmd := &cobra.Command{
		Use:   "resolve <ticket-id>",
		Short: "Mark a ticket resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, changed, err := a.backend.ResolveTicket(cmd.Context(), args[0], adminID)
			if err != nil {
				return err
			}
			if changed && a.notifier != nil { // Already-resolved tickets were notified the first time
				if err := a.notifier.TicketResolved(ticket); err != nil {
					logrus.Warnf("failed to notify ticket %s owner: %v", ticket.ID, err)
				}
			}
			return printJSON(cmd.OutOrStdout(), ticket)
		},
	}
	resolveCmd.Flags().StringVar(&adminID, "admin", "", "admin id recorded as the resolver")

	ticketsCmd.AddCommand(listCmd, resolveCmd)
	return ticketsCmd
}
