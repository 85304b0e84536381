package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Send a signed GET request to the application API",
		ArgsUsage: "PATH",
		Action:    apiGet,
	}
}

func apiGet(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("PATH argument required")
	}
	path := c.Args().First()
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	sess, err := openSession(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	resp, err := sess.API().Get(c.Context, path)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(c.App.Writer, resp.Body); err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return nil
}
