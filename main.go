package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/folio/assets"
	"github.com/milk9111/folio/contact"
	"github.com/milk9111/folio/prefabs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	debug  bool
	mobile bool
	watch  bool

	sendName    string
	sendEmail   string
	sendMessage string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "An animated 3D portfolio",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config = zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runScene,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the portfolio window (default)",
	RunE:  runScene,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one contact message through EmailJS",
	RunE:  sendOnce,
}

var webpCmd = &cobra.Command{
	Use:   "webp <src> <dst>",
	Short: "Convert a screenshot or card image to WebP",
	Args:  cobra.ExactArgs(2),
	RunE:  convertWebP,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging and overlay")

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().BoolVar(&mobile, "mobile", false, "use the constrained quality profile")
		cmd.Flags().BoolVar(&watch, "watch", false, "reload prefabs/ from disk when they change")
	}

	sendCmd.Flags().StringVar(&sendName, "name", "", "sender name (required)")
	sendCmd.Flags().StringVar(&sendEmail, "email", "", "sender email (required)")
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "message body (required)")
	_ = sendCmd.MarkFlagRequired("name")
	_ = sendCmd.MarkFlagRequired("email")
	_ = sendCmd.MarkFlagRequired("message")

	rootCmd.AddCommand(runCmd, sendCmd, webpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	game, err := NewGame(Options{Debug: debug, Mobile: mobile, Watch: watch}, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("Noah Mendoza | Portfolio")

	logger.Info("starting scene", zap.Stringer("profile", game.Profile()), zap.Bool("watch", watch))
	return ebiten.RunGame(game)
}

func loadContactConfig() (contact.Config, error) {
	data, err := prefabs.Load("contact.yaml")
	if err != nil {
		return contact.Config{}, fmt.Errorf("load contact.yaml: %w", err)
	}
	return contact.LoadConfig(data)
}

func sendOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadContactConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	client := contact.NewClient(cfg, contact.WithLogger(logger))

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.MaxTries+1)*cfg.Timeout)
	defer cancel()
	msg := contact.Message{Name: sendName, Email: sendEmail, Message: sendMessage}
	if err := client.Send(ctx, msg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Message sent!")
	return nil
}

func convertWebP(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]
	img, err := decodeFile(src)
	if err != nil {
		return err
	}

	if err := writeWebP(dst, img); err != nil {
		return err
	}
	b := img.Bounds()
	logger.Info("converted image", zap.String("src", src), zap.String("dst", dst), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return nil
}

// writeWebP encodes img to dst. A failed encode leaves no partial file.
func writeWebP(dst string, img image.Image) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("webp encode: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}

// decodeFile reads src from disk, falling back to the embedded assets.
func decodeFile(src string) (image.Image, error) {
	b, err := os.ReadFile(src)
	if err != nil {
		if b, err = assets.LoadFile(src); err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
	}
	img, err := assets.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}
