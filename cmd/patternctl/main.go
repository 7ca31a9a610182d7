package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/core"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/extract"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/config"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/types"
	"github.com/bytedance/sonic"
)

const usage = `usage: patternctl <command> [flags]

commands:
  login -email E [-password P]     sign in and store the token
  register -email E [-password P]  create an account and store the token
  logout                           forget the stored token
  status                           show session and configuration
  me                               fetch the signed-in user
  chat -m MESSAGE [-context C]     ask the assistant and show extracted fields
  transcript -url URL              fetch a video transcript and extract its pattern
  projects                         list saved projects
  extract                          parse assistant text from stdin
  encode FILE...                   print the transport form of image files
  decode                           read a JSON image array from stdin and report sizes

The password may also come from PATTERN_PASSWORD.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "patternctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, stdin io.Reader, stdout io.Writer) error {
	// Commands that never touch the network or the vault
	switch command {
	case "extract":
		return runExtract(stdin, stdout)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// stdout carries command output, so logs go to stderr
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
		File:        cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	c, err := core.New(cfg, core.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.Close()

	switch command {
	case "login", "register":
		return runAuth(ctx, c, command, args, stdout)
	case "logout":
		if err := c.Auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "logged out")
		return nil
	case "status":
		return runStatus(c, stdout)
	case "me":
		user, err := c.Auth.Me(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, user)
	case "chat":
		return runChat(ctx, c, args, stdout)
	case "transcript":
		return runTranscript(ctx, c, args, stdout)
	case "projects":
		list, err := c.Projects.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, list)
	case "encode":
		return runEncode(c, args, stdout)
	case "decode":
		return runDecode(c, stdin, stdout)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}

func runAuth(ctx context.Context, c *core.Core, command string, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", os.Getenv("PATTERN_PASSWORD"), "Account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		payload *types.AuthPayload
		err     error
	)
	if command == "login" {
		payload, err = c.Auth.Login(ctx, *email, *password)
	} else {
		payload, err = c.Auth.Register(ctx, *email, *password)
	}
	if err != nil {
		return err
	}
	if !c.HasOnboarded() {
		c.SetOnboarded(true)
	}
	fmt.Fprintf(stdout, "signed in as %s\n", payload.User.Email)
	return nil
}

func runStatus(c *core.Core, stdout io.Writer) error {
	status := map[string]interface{}{
		"endpoint":      c.Client.Endpoint(),
		"authenticated": c.Session.IsAuthenticated(),
		"vault_backend": c.Vault.BackendName(),
		"attach_token":  c.Config.API.AttachToken,
		"onboarded":     c.HasOnboarded(),
	}
	if exp, ok := c.Session.ExpiresAt(); ok {
		status["token_expires_at"] = exp.Format(time.RFC3339)
		status["token_expired"] = c.Session.Expired(time.Now())
	}
	return printJSON(stdout, status)
}

func runChat(ctx context.Context, c *core.Core, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	message := fs.String("m", "", "Message to send")
	history := fs.String("context", "", "Conversation context")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reply, fields, err := c.Assistant.ChatAndExtract(ctx, *message, *history)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, reply.Message)
	if len(fields) > 0 {
		var form types.PatternForm
		extract.Apply(&form, fields)
		return printJSON(stdout, form)
	}
	return nil
}

func runTranscript(ctx context.Context, c *core.Core, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("transcript", flag.ContinueOnError)
	videoURL := fs.String("url", "", "Video URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fields, result, err := c.Transcript.FetchAndExtract(ctx, *videoURL, nil)
	if err != nil {
		return err
	}
	if !result.Success {
		reason := "unknown reason"
		if result.Error != nil {
			reason = *result.Error
		}
		return fmt.Errorf("transcript unavailable: %s", reason)
	}

	var form types.PatternForm
	extract.Apply(&form, fields)
	return printJSON(stdout, form)
}

func runExtract(stdin io.Reader, stdout io.Writer) error {
	text, err := io.ReadAll(stdin)
	if err != nil {
		return err
	}
	return printJSON(stdout, extract.Extract(string(text)))
}

func runEncode(c *core.Core, files []string, stdout io.Writer) error {
	if len(files) == 0 {
		return fmt.Errorf("encode needs at least one image file")
	}

	encoded := make([]string, 0, len(files))
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		s, ok := c.Codec.EncodeBytes(raw)
		if !ok {
			return fmt.Errorf("%s: not a supported image", path)
		}
		encoded = append(encoded, s)
	}
	return printJSON(stdout, encoded)
}

func runDecode(c *core.Core, stdin io.Reader, stdout io.Writer) error {
	text, err := io.ReadAll(stdin)
	if err != nil {
		return err
	}

	images := c.Codec.DecodeAll(string(text))
	sizes := make([]map[string]int, 0, len(images))
	for _, img := range images {
		b := img.Bounds()
		sizes = append(sizes, map[string]int{"width": b.Dx(), "height": b.Dy()})
	}
	return printJSON(stdout, sizes)
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
