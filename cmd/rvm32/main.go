// Command rvm32 runs or debugs rvm32 images, grounded on the teacher's
// cmd/elsie wiring shape and on oisee-z80-optimizer's cobra-based CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"rvm32/internal/device"
	"rvm32/internal/loader"
	"rvm32/internal/log"
	"rvm32/internal/machine"
)

const (
	defaultMemSize   = 64 * 1024
	defaultStackSize = 4 * 1024
	consoleBase      = machine.Word(0xFFFF0000)
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return 1
	}

	return 0
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "rvm32",
		Short: "rvm32 runs and debugs images for the rvm32 virtual machine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.LogLevel.Set(log.Debug)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at Debug level")
	root.AddCommand(newRunCmd(), newDebugCmd())

	return root
}

// machineFlags are shared between run and debug: everything needed to
// wire a RAM region, a console region, and a CPU before either starting
// or loading an image at its configured base.
type machineFlags struct {
	memSize   uint32
	stackAddr uint32
	stackSize uint32
	startPC   uint32
}

func (f *machineFlags) register(flags *pflag.FlagSet) {
	flags.Uint32Var(&f.memSize, "mem", defaultMemSize, "RAM region size in bytes")
	flags.Uint32Var(&f.stackAddr, "stack", defaultMemSize, "stack top address (grows downward)")
	flags.Uint32Var(&f.stackSize, "stack-size", defaultStackSize, "stack region size in bytes")
	flags.Uint32Var(&f.startPC, "pc", 0, "initial program counter and image load address")
}

func newRunCmd() *cobra.Command {
	f := &machineFlags{}

	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "load an image and run it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cpu, console, err := bootMachine(f, args[0])
			if err != nil {
				return err
			}

			// The guest keyboard is fed from stdin only when it's an
			// interactive terminal: in a pipe/script run, there's no
			// operator typing at it.
			stdinFD := int(os.Stdin.Fd())
			if term.IsTerminal(stdinFD) {
				restore, err := device.RawMode(stdinFD)
				if err != nil {
					return fmt.Errorf("rvm32: %w", err)
				}
				defer restore()

				go console.WatchTerminal(ctx, os.Stdin)
			}

			if err := cpu.Run(ctx); err != nil {
				return fmt.Errorf("fault: %w", err)
			}

			return nil
		},
	}

	f.register(cmd.Flags())

	return cmd
}

func newDebugCmd() *cobra.Command {
	f := &machineFlags{}

	var offset uint32

	cmd := &cobra.Command{
		Use:   "debug <image>",
		Short: "load an image and single-step it with a live register/memory view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cpu, _, err := bootMachine(f, args[0])
			if err != nil {
				return err
			}

			// Size the rendered memory window to the real terminal
			// width; 0 falls back to machine.RunDebug's default.
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				width = 0
			}

			if err := cpu.RunDebug(ctx, machine.Word(offset), os.Stdin, os.Stdout, width); err != nil {
				return fmt.Errorf("fault: %w", err)
			}

			return nil
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().Uint32Var(&offset, "offset", 0, "memory window offset for the initial debug view")

	return cmd
}

// bootMachine wires a RAM region at 0, a console region at consoleBase,
// loads path into RAM at the CPU's start address, and configures the
// stack. This is reference wiring per SPEC_FULL.md §13: spec.md leaves
// concrete devices external, so a CLI needs to supply some to be runnable
// at all.
func bootMachine(f *machineFlags, path string) (*machine.CPU, *device.Console, error) {
	logger := log.DefaultLogger()

	img, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("rvm32: %w", err)
	}
	defer img.Close()

	mapper := machine.NewMemoryMapper()

	ram := device.NewRAM(machine.Word(f.memSize))
	mapper.Map(ram, 0, machine.Word(f.memSize), false)

	console := device.NewConsole(os.Stdout)
	mapper.Map(console, consoleBase, consoleBase+device.RegionSize, true)

	if _, err := loader.New().Load(ram, machine.Word(f.startPC), img); err != nil {
		return nil, nil, fmt.Errorf("rvm32: %w", err)
	}

	cpu := machine.NewCPU(mapper, machine.Word(f.startPC))
	cpu.SetStack(machine.Word(f.stackAddr), machine.Word(f.stackSize))

	logger.Info("machine booted", "mem", f.memSize, "stack", f.stackAddr, "pc", f.startPC)

	return cpu, console, nil
}
