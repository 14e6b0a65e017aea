package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-supa-client/models"
	"github.com/spf13/cobra"
)

type credentialFlags struct {
	email    string
	phone    string
	password string
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "Account e-mail")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Account phone number")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Account password (read from stdin when omitted)")
	cmd.MarkFlagsMutuallyExclusive("email", "phone")
	cmd.MarkFlagsOneRequired("email", "phone")
}

// credentials reads the password from stdin when the flag is empty.
func (f *credentialFlags) credentials(cmd *cobra.Command) (models.Credentials, error) {
	password := f.password
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		var err error
		if password, err = readLine(cmd.InOrStdin()); err != nil {
			return models.Credentials{}, fmt.Errorf("read password: %w", err)
		}
	}

	return models.Credentials{Email: f.email, Phone: f.phone, Password: password}, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newSignUpCommand(rt *runtime) *cobra.Command {
	var (
		flags      credentialFlags
		redirectTo string
		data       map[string]string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: rt.runE(func(cmd *cobra.Command, _ []string) error {
			creds, err := flags.credentials(cmd)
			if err != nil {
				return err
			}
			creds.RedirectTo = redirectTo
			if len(data) > 0 {
				creds.Data = make(map[string]any, len(data))
				for k, v := range data {
					creds.Data[k] = v
				}
			}

			resp, err := rt.app.Auth().SignUp(cmd.Context(), creds)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resp.Session != nil {
				fmt.Fprintf(out, "account created, signed in as %s\n", accountName(resp.Session.User))
				return nil
			}
			if resp.User != nil {
				fmt.Fprintf(out, "account created for %s, confirm it before signing in\n", accountName(*resp.User))
				return nil
			}
			fmt.Fprintln(out, "account created")
			return nil
		}),
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&redirectTo, "redirect-to", "", "URL the confirmation link points back to")
	cmd.Flags().StringToStringVar(&data, "data", nil, "User metadata as key=value pairs")

	return cmd
}

func newSignInCommand(rt *runtime) *cobra.Command {
	var flags credentialFlags

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with e-mail or phone and password",
		Args:  cobra.NoArgs,
		RunE: rt.runE(func(cmd *cobra.Command, _ []string) error {
			creds, err := flags.credentials(cmd)
			if err != nil {
				return err
			}

			resp, err := rt.app.Auth().SignInWithPassword(cmd.Context(), creds)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", accountName(*resp.User))
			return nil
		}),
	}

	flags.register(cmd)
	return cmd
}

func newSignOutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: rt.runE(func(cmd *cobra.Command, _ []string) error {
			if err := rt.app.Auth().SignOut(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		}),
	}
}

func accountName(u models.User) string {
	switch {
	case u.Email != "":
		return u.Email
	case u.Phone != "":
		return u.Phone
	default:
		return u.ID
	}
}
