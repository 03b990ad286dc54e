package audit

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/kbcheck/internal/gitrepo"
)

const (
	rangeEchoTemplateConstant         = "%s\n"
	resolveRangeErrorTemplateConstant = "unable to resolve commit range: %w"
	diffRangeErrorTemplateConstant    = "unable to diff %s against %s: %w"
	readChangeErrorTemplateConstant   = "unable to load %s: %w"
	emptyRangeMessageConstant         = "No commit range supplied, skipping modified date audit"
	auditStartedMessageConstant       = "Auditing modified dates"
	changesFilteredMessageConstant    = "Selected changes for audit"
	changeAcceptedMessageConstant     = "Modified date updated"
	changeRejectedMessageConstant     = "Modified date unchanged"
	auditPassedMessageConstant        = "All modified dates updated"
	logFieldRangeConstant             = "commit_range"
	logFieldStartCommitConstant       = "start_commit"
	logFieldEndCommitConstant         = "end_commit"
	logFieldChangedCountConstant      = "changed_files"
	logFieldAuditedCountConstant      = "audited_files"
	logFieldPathConstant              = "path"
	logFieldOldModifiedConstant       = "old_modified"
	logFieldNewModifiedConstant       = "new_modified"
	logFieldOldRevisionSourceConstant = "old_revision_source"
)

// Service audits modified dates across a commit range.
type Service struct {
	logger       *zap.Logger
	repository   RepositoryReader
	parser       MetadataParser
	outputWriter io.Writer
	clock        Clock
}

// NewService constructs a Service. A nil logger, writer or clock falls back to a no-op or system default.
func NewService(logger *zap.Logger, repository RepositoryReader, parser MetadataParser, outputWriter io.Writer, clock Clock) (*Service, error) {
	if repository == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if parser == nil {
		return nil, ErrMetadataParserNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		logger:       logger,
		repository:   repository,
		parser:       parser,
		outputWriter: outputWriter,
		clock:        clock,
	}, nil
}

// Run executes the audit. It returns ViolationError when at least one changed file kept its modified date.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	rangeExpression := strings.TrimSpace(options.RangeExpression)
	if len(rangeExpression) == 0 {
		service.logger.Info(emptyRangeMessageConstant)
		return nil
	}

	fmt.Fprintf(service.outputWriter, rangeEchoTemplateConstant, options.RangeExpression)

	commitRange, parseError := ParseCommitRange(rangeExpression)
	if parseError != nil {
		return parseError
	}

	startCommit, resolveStartError := service.repository.ResolveCommit(executionContext, commitRange.Start)
	if resolveStartError != nil {
		return fmt.Errorf(resolveRangeErrorTemplateConstant, resolveStartError)
	}
	endCommit, resolveEndError := service.repository.ResolveCommit(executionContext, commitRange.End)
	if resolveEndError != nil {
		return fmt.Errorf(resolveRangeErrorTemplateConstant, resolveEndError)
	}

	field := options.ModifiedField
	if len(field) == 0 {
		field = defaultModifiedFieldConstant
	}

	service.logger.Info(
		auditStartedMessageConstant,
		zap.String(logFieldRangeConstant, rangeExpression),
		zap.String(logFieldStartCommitConstant, startCommit),
		zap.String(logFieldEndCommitConstant, endCommit),
		zap.String(logFieldOldRevisionSourceConstant, string(options.OldRevisionSource)),
	)

	changes, diffError := service.repository.DiffCommits(executionContext, startCommit, endCommit, gitrepo.DiffOptions{DetectRenames: options.DetectRenames})
	if diffError != nil {
		return fmt.Errorf(diffRangeErrorTemplateConstant, commitRange.End, commitRange.Start, diffError)
	}

	auditedChanges := FilterChanges(changes, ChangeFilter{
		TrackedExtensions: options.TrackedExtensions,
		IgnoredFileNames:  options.IgnoredFileNames,
	})
	service.logger.Debug(
		changesFilteredMessageConstant,
		zap.Int(logFieldChangedCountConstant, len(changes)),
		zap.Int(logFieldAuditedCountConstant, len(auditedChanges)),
	)

	oldCommit := startCommit
	if options.OldRevisionSource == RevisionSourceEnd {
		oldCommit = endCommit
	}

	comparisons := make([]MetadataComparison, 0, len(auditedChanges))
	for _, change := range auditedChanges {
		oldModified, oldError := service.readModifiedDate(executionContext, oldCommit, change.OldPath, field)
		if oldError != nil {
			return oldError
		}
		newModified, newError := service.readModifiedDate(executionContext, endCommit, change.NewPath, field)
		if newError != nil {
			return newError
		}
		comparisons = append(comparisons, MetadataComparison{Change: change, OldModified: oldModified, NewModified: newModified})
	}

	now := service.clock.Now()
	violations := EvaluateComparisons(comparisons, now)
	service.logComparisons(comparisons, now)

	if len(violations) > 0 {
		return ViolationError{Field: field, Paths: violations}
	}

	service.logger.Info(auditPassedMessageConstant, zap.Int(logFieldAuditedCountConstant, len(comparisons)))
	return nil
}

func (service *Service) readModifiedDate(executionContext context.Context, commit string, filePath string, field string) (time.Time, error) {
	content, readError := service.repository.ReadFile(executionContext, commit, filePath)
	if readError != nil {
		return time.Time{}, fmt.Errorf(readChangeErrorTemplateConstant, filePath, readError)
	}
	instant, parseError := service.parser.ModifiedDate(content, field)
	if parseError != nil {
		return time.Time{}, MetadataError{Field: field, Path: filePath, Commit: commit, Cause: parseError}
	}
	return instant, nil
}

func (service *Service) logComparisons(comparisons []MetadataComparison, now time.Time) {
	for _, comparison := range comparisons {
		fields := []zap.Field{
			zap.String(logFieldPathConstant, comparison.Change.NewPath),
			zap.Time(logFieldOldModifiedConstant, comparison.OldModified),
			zap.Time(logFieldNewModifiedConstant, comparison.NewModified),
		}
		if IsModifiedDateUpdated(comparison.OldModified, comparison.NewModified, now) {
			service.logger.Debug(changeAcceptedMessageConstant, fields...)
			continue
		}
		service.logger.Debug(changeRejectedMessageConstant, fields...)
	}
}
