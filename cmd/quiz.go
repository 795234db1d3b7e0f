package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnbot/internal/quiz"
	"github.com/abhisek/learnbot/internal/tutor"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a multiple-choice quiz on the console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTutor(cmd, func(t *tutor.Tutor) error {
			s, err := t.StartQuiz()
			if err != nil {
				return err
			}
			return playQuiz(s, cmd.InOrStdin(), cmd.OutOrStdout())
		})
	},
}

// errQuizAbandoned reports that input ended before the last answer.
var errQuizAbandoned = errors.New("quiz abandoned")

// playQuiz drives s from line-oriented input. Each answer is an option
// number starting at 1; anything else re-prompts.
func playQuiz(s *quiz.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for !s.Done() {
		item, err := s.Next()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n%s\n", s.State().(quiz.Active).Header(), item.Question)
		for i, opt := range item.Options {
			fmt.Fprintf(out, "  %d. %s\n", i+1, opt)
		}

		for {
			fmt.Fprint(out, "Your answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return errQuizAbandoned
			}
			n, convErr := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if convErr != nil {
				fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", len(item.Options))
				continue
			}
			correct, err := s.Answer(n - 1)
			var invalid *quiz.InvalidChoiceError
			if errors.As(err, &invalid) {
				fmt.Fprintln(out, tutor.UserMessage(err))
				continue
			}
			if err != nil {
				return err
			}
			if correct {
				fmt.Fprintln(out, "Correct!")
			} else {
				fmt.Fprintf(out, "Not quite. The answer is: %s\n", item.AnswerText())
			}
			break
		}
	}

	fmt.Fprintf(out, "\n%s\n", s.State().(quiz.Complete).Summary())
	return nil
}
