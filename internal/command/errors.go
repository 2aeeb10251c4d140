package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hansol-io/banter/internal/api"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status == 401 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Hint: your session may have expired. Try: %s login\n", AppName)
	}

	return err
}
