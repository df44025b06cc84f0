package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/color"
	log "github.com/sirupsen/logrus"

	"github.com/studentenherz/rlox/internal"
)

const version = "0.1.0"

const quitLine = "q!"

func run(source string) {
	stream := internal.Tokenize(source)
	for token, ok := stream.Next(); ok; token, ok = stream.Next() {
		if token.Type == internal.WHITESPACE {
			continue
		}
		fmt.Println(token)
	}
}

func runScript(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Fatal(err)
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		log.Fatal(err)
	}

	run(string(b))
}

func runPrompt() {
	color.Println(color.Bold(fmt.Sprintf("Welcome to rlox version %s", version)))
	fmt.Printf("Use %s to quit\n", quitLine)

	in := bufio.NewReader(os.Stdin)
	for {
		color.Print(color.Green("> "))

		// The newline stays on the line so the quit check and the
		// tokens both see the input exactly as typed.
		line, err := in.ReadString('\n')
		if line == quitLine+"\n" {
			break
		}
		run(line)
		if err != nil {
			break
		}
	}
}

func main() {
	argsWithoutProg := os.Args[1:]

	switch len(argsWithoutProg) {
	case 0:
		runPrompt()
	case 1:
		runScript(argsWithoutProg[0])
	default:
		fmt.Println("Usage: rlox [/path/to/script.lox]")
	}
}
