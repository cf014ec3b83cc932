// Package cli implements the pgrange command.
package cli

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rangekit/pgrange"
	"github.com/rangekit/pgrange/multitracer"
	"github.com/rangekit/pgrange/pgtype"
	"github.com/rangekit/pgrange/pgwire"
	"github.com/rangekit/pgrange/rangeop"
	"github.com/rangekit/pgrange/sqltext"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the pgrange command with os.Args and returns the process exit code.
func Execute() int {
	root := NewRootCommand(os.Stdout, os.Stderr)
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

type app struct {
	stderr    io.Writer
	showStats bool

	cfg     *Config
	m       *pgtype.Map
	dialect *sqltext.Dialect
	dec     *pgwire.Decoder
	ev      *rangeop.Evaluator
	stats   *statsTracer
}

// NewRootCommand builds the command tree. Each call returns an independent tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:           "pgrange",
		Short:         "Evaluate PostgreSQL range values and operators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.showStats {
				a.stats.write(cmd.ErrOrStderr())
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	addConfigFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVar(&a.showStats, "stats", false, "print operation counts to stderr")

	root.AddCommand(
		a.parseCommand(),
		a.evalCommand(),
		a.literalCommand(),
		a.predicateCommand(),
		a.typesCommand(),
	)
	return root
}

func (a *app) setup(flags *pflag.FlagSet) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.dialect, err = cfg.dialect()
	if err != nil {
		return err
	}

	a.m = cfg.newMap()
	a.stats = &statsTracer{}
	tracers := []rangeop.Tracer{a.stats}
	if tl := cfg.traceLog(a.stderr); tl != nil {
		tracers = append(tracers, tl)
	}
	tracer := multitracer.New(tracers...)

	a.dec = &pgwire.Decoder{Map: a.m, Tracer: tracer}
	a.ev = &rangeop.Evaluator{Tracer: tracer}
	return nil
}

func (a *app) typeFor(name string) (*pgtype.Type, error) {
	typ, ok := a.m.TypeForName(name)
	if !ok {
		return nil, fmt.Errorf("unknown range type %q", name)
	}
	return typ, nil
}

// decodeText decodes the text form of a range of the named type.
func (a *app) decodeText(ctx context.Context, typeName, src string) (pgtype.Value, error) {
	typ, err := a.typeFor(typeName)
	if err != nil {
		return nil, err
	}
	return a.dec.Decode(ctx, typ.OID, pgrange.TextFormatCode, []byte(src))
}

func (a *app) parseCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "parse <type> <value>",
		Short: "Decode a range and print it in canonical form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := a.typeFor(args[0])
			if err != nil {
				return err
			}

			var format int16
			var src []byte
			switch input {
			case "text":
				format, src = pgrange.TextFormatCode, []byte(args[1])
			case "binary":
				format = pgrange.BinaryFormatCode
				src, err = hex.DecodeString(args[1])
				if err != nil {
					return fmt.Errorf("invalid hex input: %w", err)
				}
			default:
				return fmt.Errorf("invalid input format %q", input)
			}

			v, err := a.dec.Decode(cmd.Context(), typ.OID, format, src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "text":
				fmt.Fprintln(out, v.String())
			case "binary":
				buf, err := v.Encode(pgrange.BinaryFormatCode, nil)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, hex.EncodeToString(buf))
			case "json":
				buf, err := json.Marshal(v.Range())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(buf))
			default:
				return fmt.Errorf("invalid output format %q", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "text", "format of <value>: text or binary (hex encoded)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "text, binary (hex encoded) or json")
	return cmd
}

func (a *app) evalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <type> <left> <operator> <right>",
		Short: "Apply a range operator",
		Long: `Apply a range operator to two ranges of the same type.

The operator is given as its SQL symbol or its name, for example && or overlaps.
Symbols starting with '-' must follow a "--" argument. For @> and <@ the other
operand may also be a single element.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := rangeop.ParseOperator(args[2])
			if err != nil {
				return err
			}

			left, right := args[1], args[3]
			var res pgtype.Result
			switch {
			case op == rangeop.Contains && !looksLikeRange(right):
				v, err := a.decodeText(ctx, args[0], left)
				if err != nil {
					return err
				}
				res, err = v.ApplyElement(ctx, a.ev, op, right)
				if err != nil {
					return err
				}
			case op == rangeop.ContainedBy && !looksLikeRange(left):
				// elem <@ r is r @> elem.
				v, err := a.decodeText(ctx, args[0], right)
				if err != nil {
					return err
				}
				res, err = v.ApplyElement(ctx, a.ev, rangeop.Contains, left)
				if err != nil {
					return err
				}
			default:
				l, err := a.decodeText(ctx, args[0], left)
				if err != nil {
					return err
				}
				r, err := a.decodeText(ctx, args[0], right)
				if err != nil {
					return err
				}
				res, err = l.Apply(ctx, a.ev, op, r)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			return nil
		},
	}
}

// looksLikeRange reports whether s is written as a range rather than a single element.
func looksLikeRange(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "[") || strings.HasPrefix(s, "(") || strings.EqualFold(s, "empty")
}

func (a *app) literalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "literal <type> <value>",
		Short: "Render a range as a typed SQL literal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.decodeText(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			lit, err := a.dialect.Literal(v, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), lit)
			return nil
		},
	}
}

func (a *app) predicateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "predicate <type> <column> <operator> <value>",
		Short: "Render a SQL condition comparing a column to a range",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := rangeop.ParseOperator(args[2])
			if err != nil {
				return err
			}

			v, err := a.decodeText(cmd.Context(), args[0], args[3])
			if err != nil {
				return err
			}

			sql, err := a.dialect.Predicate(args[1], op, v, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sql)
			return nil
		},
	}
}

func (a *app) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered range types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 1, ' ', 0)
			fmt.Fprintln(w, "NAME\tOID")
			for _, typ := range a.m.Types() {
				fmt.Fprintf(w, "%s\t%d\n", typ.Name, typ.OID)
			}
			return w.Flush()
		},
	}
}
