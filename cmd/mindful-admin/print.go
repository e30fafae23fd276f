package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
)

func printSessions(out io.Writer, sessions []domainauth.Session) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(out, "no sessions")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tUSER\tNAME\tROLE\tEXPIRES"); err != nil {
		return err
	}
	for _, s := range sessions {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.UserID, s.Label(), s.Role, s.ExpiresAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printSession(out io.Writer, s domainauth.Session) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"ID", s.ID},
		{"User", s.UserID},
		{"Name", s.Label()},
		{"Email", s.Email},
		{"Role", string(s.Role)},
		{"Expires", s.ExpiresAt.UTC().Format(time.RFC3339)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}
