/*
Package runner implements the interactive chat loop of the assistant.

It reads customer messages through a pluggable IOHandler, submits them to
the assistant and presents the replies. Lines starting with a slash are
commands handled locally:

	/menu      show the menu
	/cart      show the cart
	/log       show metrics and the activity log
	/reset     start over (metrics are kept)
	/clearlog  empty the activity log
	/quit      leave

# Handlers

  - TextHandler: interactive terminal IO, markdown rendered by a ContentRenderer.
  - JSONHandler: newline-delimited JSON for scripted front ends.

# Usage

	r := runner.NewRunner(
		runner.WithSessionID("table-4"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	if err := r.Run(ctx, assistant); err != nil {
		log.Fatal(err)
	}
*/
package runner
