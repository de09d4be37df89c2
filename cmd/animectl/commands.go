package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"anime-tracker/internal/client"

	"github.com/urfave/cli/v3"
)

const defaultTimeout = 10 * time.Second

// stderrNotifier imprime el resultado de cada acción, como los toasts de la UI.
type stderrNotifier struct {
	out io.Writer
}

func (n stderrNotifier) Success(msg string) {
	fmt.Fprintf(n.out, "ok: %s\n", msg)
}

func (n stderrNotifier) Failure(msg string, err error) {
	fmt.Fprintf(n.out, "error: %s: %v\n", msg, err)
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "list",
			Usage: "List animes of one status",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "status",
					Usage: "Assistindo, Completo, Dropado or \"Planejo Assistir\" (English aliases accepted)",
					Value: "Assistindo",
				},
				&cli.BoolFlag{
					Name:  "all",
					Usage: "Ignore --status and list everything",
				},
			},
			Action: listAction,
		},
		{
			Name:      "add",
			Usage:     "Add an anime",
			ArgsUsage: "<name>",
			Flags:     append(inputFlags(), &cli.StringFlag{Name: "image", Usage: "Cover image URL", Required: true}),
			Action:    addAction,
		},
		{
			Name:      "update",
			Usage:     "Update the given fields of an anime",
			ArgsUsage: "<id>",
			Flags: append(inputFlags(),
				&cli.StringFlag{Name: "name", Usage: "New name"},
				&cli.StringFlag{Name: "image", Usage: "Cover image URL"},
			),
			Action: updateAction,
		},
		{
			Name:      "delete",
			Aliases:   []string{"rm"},
			Usage:     "Delete an anime",
			ArgsUsage: "<id>",
			Action:    deleteAction,
		},
	}
}

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "status", Usage: "Watch status"},
		&cli.IntFlag{Name: "total", Usage: "Total episodes"},
		&cli.IntFlag{Name: "watched", Usage: "Watched episodes"},
		&cli.FloatFlag{Name: "score", Usage: "Score from 0 to 10"},
	}
}

func newController(cmd *cli.Command) (*client.Controller, error) {
	return client.NewFromURL(cmd.String("server"), cmd.Duration("timeout"), stderrNotifier{out: cmd.Root().ErrWriter})
}

// readInput arma el Input solo con los flags que el usuario pasó.
func readInput(cmd *cli.Command) client.Input {
	var in client.Input
	if cmd.IsSet("name") {
		v := cmd.String("name")
		in.Name = &v
	}
	if cmd.IsSet("image") {
		v := cmd.String("image")
		in.ImageURL = &v
	}
	if cmd.IsSet("status") {
		v := cmd.String("status")
		in.Status = &v
	}
	if cmd.IsSet("total") {
		v := int(cmd.Int("total"))
		in.TotalEpisodes = &v
	}
	if cmd.IsSet("watched") {
		v := int(cmd.Int("watched"))
		in.WatchedEpisodes = &v
	}
	if cmd.IsSet("score") {
		v := cmd.Float("score")
		in.Score = &v
	}
	return in
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newController(cmd)
	if err != nil {
		return err
	}
	if err := c.Load(ctx); err != nil {
		return err
	}

	items := c.All()
	if !cmd.Bool("all") {
		if !c.SetStatus(cmd.String("status")) {
			return fmt.Errorf("unknown status %q", cmd.String("status"))
		}
		items = c.Visible()
	}

	printAnimes(cmd.Root().Writer, items)
	if !cmd.Bool("all") {
		s := c.Stats()
		fmt.Fprintf(cmd.Root().Writer, "\n%s: %d animes, %d episodes watched\n", c.Status(), s.Total, s.WatchedEpisodes)
	}
	return nil
}

func addAction(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.New("missing <name>")
	}
	c, err := newController(cmd)
	if err != nil {
		return err
	}

	in := readInput(cmd)
	in.Name = &name

	a, err := c.Add(ctx, in)
	if err != nil {
		return err
	}
	printAnimes(cmd.Root().Writer, []client.Anime{a})
	return nil
}

func updateAction(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return errors.New("missing <id>")
	}
	c, err := newController(cmd)
	if err != nil {
		return err
	}

	a, err := c.Update(ctx, id, readInput(cmd))
	if err != nil {
		return err
	}
	printAnimes(cmd.Root().Writer, []client.Anime{a})
	return nil
}

func deleteAction(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return errors.New("missing <id>")
	}
	c, err := newController(cmd)
	if err != nil {
		return err
	}
	return c.Delete(ctx, id)
}

func printAnimes(w io.Writer, items []client.Anime) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tPROGRESS\tSCORE")
	for _, a := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d\n", a.ID, a.Name, a.Status, a.WatchedEpisodes, a.TotalEpisodes, a.Score)
	}
	_ = tw.Flush()
}
