package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/stn-common/pkg/logger"
	"github.com/huynhanx03/stn-common/pkg/settings"
	"github.com/huynhanx03/stn-common/pkg/utils"
)

var _ Solver = (*ExecSolver)(nil)

// waitDelay bounds how long a killed engine may keep its output pipes open.
const waitDelay = time.Second

// ExecSolver runs an engine binary per Solve call.
// The problem is written to the process stdin as JSON and a JSON Solution is read from stdout.
type ExecSolver struct {
	path    string
	args    []string
	timeout time.Duration
	log     *zap.Logger
}

// NewExecSolver creates an ExecSolver from configuration. A nil logger disables logging.
func NewExecSolver(cfg *settings.Solver, log *zap.Logger) *ExecSolver {
	return &ExecSolver{
		path:    cfg.Path,
		args:    append([]string(nil), cfg.Args...),
		timeout: utils.ToDuration(cfg.Timeout),
		log:     logger.OrNop(log),
	}
}

// Solve validates p, runs the engine and decodes its answer.
func (s *ExecSolver) Solve(ctx context.Context, p *Problem) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	path, err := exec.LookPath(s.path)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrEngineUnavailable, "%s: %v", s.path, err)
	}

	input, err := json.Marshal(p)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "encode problem")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, s.args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	s.log.Debug("starting solver", zap.String("path", path), zap.Int("variables", len(p.Variables)))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, pkgerrors.Wrap(ctxErr, "solver interrupted")
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.log.Warn("solver exited abnormally",
				zap.Int("exit_code", exitErr.ExitCode()),
				zap.String("stderr", stderr.String()),
			)
			return nil, pkgerrors.Wrapf(ErrEngineFailed, "exit code %d: %s", exitErr.ExitCode(), stderr.String())
		}
		return nil, pkgerrors.Wrapf(ErrEngineUnavailable, "%v", err)
	}

	var sol Solution
	if err := json.Unmarshal(stdout.Bytes(), &sol); err != nil {
		return nil, pkgerrors.Wrapf(ErrBadSolution, "%v", err)
	}
	if sol.Status == "" {
		return nil, pkgerrors.Wrap(ErrBadSolution, "missing status")
	}
	if !sol.Status.Valid() {
		return nil, pkgerrors.Wrapf(ErrBadSolution, "unknown status %q", sol.Status)
	}

	s.log.Info("solver finished",
		zap.String("status", string(sol.Status)),
		zap.Float64("objective", sol.Objective),
		zap.Int("iterations", sol.Iterations),
		zap.Duration("took", time.Since(start)),
	)
	return &sol, nil
}
