package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/lessonhub/core/classroom"
	"github.com/trezcool/lessonhub/core/drive"
	"github.com/trezcool/lessonhub/core/session"
)

var (
	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in; run `lessonhub login` first")
)

type commandLine struct {
	state     *classroom.State
	sessions  *session.Manager
	rooms     *classroom.Service
	connector *drive.Connector
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login                                           - open the identity provider in the browser")
	fmt.Println("  handoff -fragment FRAGMENT                      - complete the login with the returned URL fragment")
	fmt.Println("  whoami                                          - show the current identity")
	fmt.Println("  dashboard                                       - load classes, lessons, notifications and messages")
	fmt.Println("  logout                                          - end the session and clear local state")
	fmt.Println("  create-class -name NAME [-description TEXT]     - create a class")
	fmt.Println("  create-lesson -title TITLE -class ID [-description TEXT]")
	fmt.Println("  send -to USER_ID -message TEXT                  - send a message")
	fmt.Println("  read -id NOTIFICATION_ID                        - mark a notification read")
	fmt.Println("  connect                                         - open the Google consent screen in a popup")
	fmt.Println("  probe                                           - re-check the Google channel and listings")
	fmt.Println("  import -kind slide|doc -id ID [-lesson ID]      - import an external resource")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "login":
		return cli.sessions.BeginLogin()

	case "handoff":
		cmd := flag.NewFlagSet("handoff", flag.ExitOnError)
		fragment := cmd.String("fragment", "", "The URL fragment returned by the identity provider.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *fragment == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.handoff(ctx, *fragment)

	case "whoami":
		sess := cli.sessions.Resolve(ctx)
		if sess == nil {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s <%s> (%s)\n", sess.User.Name, sess.User.Email, sess.User.Role)
		return nil

	case "dashboard":
		if sess := cli.sessions.Resolve(ctx); sess == nil {
			return errNotLoggedIn
		}
		cli.rooms.LoadAll(ctx)
		cli.printDashboard()
		return nil

	case "logout":
		return cli.sessions.EndSession()

	case "create-class":
		cmd := flag.NewFlagSet("create-class", flag.ExitOnError)
		name := cmd.String("name", "", "The class name.")
		description := cmd.String("description", "", "An optional description.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if sess := cli.sessions.Resolve(ctx); sess == nil {
			return errNotLoggedIn
		}
		cls, err := cli.rooms.CreateClass(ctx, classroom.NewClass{Name: *name, Description: *description})
		if err != nil {
			return err
		}
		fmt.Printf("created class %s (%s)\n", cls.Name, cls.ID)
		return nil

	case "create-lesson":
		cmd := flag.NewFlagSet("create-lesson", flag.ExitOnError)
		title := cmd.String("title", "", "The lesson title.")
		classID := cmd.String("class", "", "The class to attach the lesson to.")
		description := cmd.String("description", "", "An optional description.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if sess := cli.sessions.Resolve(ctx); sess == nil {
			return errNotLoggedIn
		}
		lsn, err := cli.rooms.CreateLesson(ctx, classroom.NewLesson{
			Title:       *title,
			Description: *description,
			ClassID:     *classID,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created lesson %s (%s)\n", lsn.Title, lsn.ID)
		return nil

	case "send":
		cmd := flag.NewFlagSet("send", flag.ExitOnError)
		to := cmd.String("to", "", "The recipient's user id.")
		body := cmd.String("message", "", "The message text.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if sess := cli.sessions.Resolve(ctx); sess == nil {
			return errNotLoggedIn
		}
		msg, err := cli.rooms.SendMessage(ctx, classroom.NewMessage{Body: *body, RecipientID: *to})
		if err != nil {
			return err
		}
		fmt.Printf("sent message %s\n", msg.ID)
		return nil

	case "read":
		cmd := flag.NewFlagSet("read", flag.ExitOnError)
		id := cmd.String("id", "", "The notification id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		if sess := cli.sessions.Resolve(ctx); sess == nil {
			return errNotLoggedIn
		}
		return cli.rooms.MarkNotificationRead(ctx, *id)

	case "connect":
		if sess := cli.sessions.Resolve(ctx); sess == nil {
			return errNotLoggedIn
		}
		u, err := cli.connector.BeginConnect(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("opened %s\ncomplete the consent flow, then run `lessonhub probe`\n", u)
		return nil

	case "probe":
		if sess := cli.sessions.Resolve(ctx); sess == nil {
			return errNotLoggedIn
		}
		cli.connector.Probe(ctx, cli.state.Epoch())
		fmt.Printf("connected: %v, %d slides, %d docs\n",
			cli.state.DriveConnected(), len(cli.state.Slides()), len(cli.state.Docs()))
		return nil

	case "import":
		cmd := flag.NewFlagSet("import", flag.ExitOnError)
		kind := cmd.String("kind", drive.KindSlide, "Resource kind: slide or doc.")
		id := cmd.String("id", "", "The external resource id.")
		lessonID := cmd.String("lesson", "", "An optional lesson to link the import to.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		if sess := cli.sessions.Resolve(ctx); sess == nil {
			return errNotLoggedIn
		}
		res, err := cli.connector.Import(ctx, *kind, *id, *lessonID)
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) handoff(ctx context.Context, fragment string) error {
	cleaned, sess, err := cli.sessions.CompleteHandoff(ctx, fragment)
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Println("no identifier to consume")
		return nil
	}
	if cleaned != "" {
		fmt.Printf("remaining fragment: %s\n", cleaned)
	}
	fmt.Printf("logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
	cli.rooms.LoadAll(ctx)
	cli.printDashboard()
	return nil
}

func (cli *commandLine) printDashboard() {
	fmt.Printf("%d classes, %d lessons, %d messages, %d notifications (%d unread)\n",
		len(cli.state.Classes()), len(cli.state.Lessons()), len(cli.state.Messages()),
		len(cli.state.Notifications()), cli.state.UnreadCount())
	if cli.state.DriveConnected() {
		fmt.Printf("google: connected, %d slides, %d docs\n",
			len(cli.state.Slides()), len(cli.state.Docs()))
	} else {
		fmt.Println("google: not connected")
	}
}
