// Command c8 executes CHIP-8 ROMs in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/nf/c8/chip8"
)

func main() {
	log.SetPrefix("c8: ")
	log.SetFlags(0)

	var (
		hzFlag        = flag.Int("hz", 600, "instruction clock rate")
		devFlag       = flag.Bool("dev", false, "reload the ROM whenever its file changes")
		listFlag      = flag.Bool("d", false, "print a disassembly listing and exit")
		copyShiftFlag = flag.Bool("copy_shift", false, "SHR/SHL copy Vy into Vx before shifting (older ISA variant)")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-hz rate] [-dev] <program.ch8>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -d <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	if *listFlag {
		rom, err := readROM(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		disasm(os.Stdout, rom)
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := run(flag.Arg(0), options{
		hz:     *hzFlag,
		dev:    *devFlag,
		quirks: chip8.Quirks{CopyShift: *copyShiftFlag},
	})

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}
