package conn

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultPollInterval = 500 * time.Millisecond

// AthenaAPI is the subset of the Athena client used by AthenaConnection.
type AthenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

// AthenaConfig holds what is needed to run queries against Athena.
type AthenaConfig struct {
	Region         string
	AccessKey      string
	SecretKey      string
	Schema         string
	OutputLocation string
	WorkGroup      string
	PollInterval   time.Duration
}

// AthenaConnection runs queries through the Athena API and waits for them
// to finish before returning their rows.
type AthenaConnection struct {
	client AthenaAPI
	cfg    AthenaConfig
	logger zerolog.Logger
}

// OpenAthena builds an Athena client for cfg. Static credentials are used
// when a key pair is configured, the default AWS credential chain otherwise.
func OpenAthena(ctx context.Context, cfg AthenaConfig, logger zerolog.Logger) (*AthenaConnection, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewAthenaConnection(athena.NewFromConfig(awsCfg), cfg, logger), nil
}

// NewAthenaConnection wraps an existing client.
func NewAthenaConnection(client AthenaAPI, cfg AthenaConfig, logger zerolog.Logger) *AthenaConnection {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &AthenaConnection{
		client: client,
		cfg:    cfg,
		logger: logger.With().Str("component", "athena-connection").Str("region", cfg.Region).Logger(),
	}
}

func (c *AthenaConnection) SchemaName() string { return c.cfg.Schema }

// Execute starts query, polls until it reaches a final state and returns
// every result row. The header row Athena prepends to DML results is dropped.
func (c *AthenaConnection) Execute(ctx context.Context, query string) ([]Row, error) {
	input := &athena.StartQueryExecutionInput{
		QueryString:        aws.String(query),
		ClientRequestToken: aws.String(uuid.NewString()),
	}
	if c.cfg.Schema != "" {
		input.QueryExecutionContext = &types.QueryExecutionContext{Database: aws.String(c.cfg.Schema)}
	}
	if c.cfg.OutputLocation != "" {
		input.ResultConfiguration = &types.ResultConfiguration{OutputLocation: aws.String(c.cfg.OutputLocation)}
	}
	if c.cfg.WorkGroup != "" {
		input.WorkGroup = aws.String(c.cfg.WorkGroup)
	}

	started, err := c.client.StartQueryExecution(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start query: %w", err)
	}
	id := aws.ToString(started.QueryExecutionId)
	c.logger.Debug().Str("query_execution_id", id).Str("query", query).Msg("query started")

	execution, err := c.wait(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, id, execution.StatementType == types.StatementTypeDml)
}

func (c *AthenaConnection) wait(ctx context.Context, id string) (*types.QueryExecution, error) {
	for {
		out, err := c.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{QueryExecutionId: aws.String(id)})
		if err != nil {
			return nil, fmt.Errorf("failed to get query execution %s: %w", id, err)
		}

		qe := out.QueryExecution
		if qe == nil || qe.Status == nil {
			return nil, fmt.Errorf("query execution %s has no status", id)
		}

		switch qe.Status.State {
		case types.QueryExecutionStateSucceeded:
			return qe, nil
		case types.QueryExecutionStateFailed:
			return nil, fmt.Errorf("%w: %s: %s", ErrQueryFailed, id, aws.ToString(qe.Status.StateChangeReason))
		case types.QueryExecutionStateCancelled:
			return nil, fmt.Errorf("%w: %s", ErrQueryCancelled, id)
		}

		timer := time.NewTimer(c.cfg.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *AthenaConnection) fetch(ctx context.Context, id string, hasHeader bool) ([]Row, error) {
	var (
		out     []Row
		columns []string
		token   *string
		first   = true
	)
	for {
		page, err := c.client.GetQueryResults(ctx, &athena.GetQueryResultsInput{
			QueryExecutionId: aws.String(id),
			NextToken:        token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get query results %s: %w", id, err)
		}
		if page.ResultSet == nil {
			break
		}

		if columns == nil && page.ResultSet.ResultSetMetadata != nil {
			for _, ci := range page.ResultSet.ResultSetMetadata.ColumnInfo {
				columns = append(columns, aws.ToString(ci.Name))
			}
		}

		rows := page.ResultSet.Rows
		if first && hasHeader && len(rows) > 0 {
			rows = rows[1:]
		}
		first = false

		for _, r := range rows {
			rec := &Record{Columns: columns, Values: make([]sql.NullString, len(r.Data))}
			for i, d := range r.Data {
				if d.VarCharValue != nil {
					rec.Values[i] = sql.NullString{String: *d.VarCharValue, Valid: true}
				}
			}
			out = append(out, rec)
		}

		token = page.NextToken
		if token == nil {
			break
		}
	}

	c.logger.Debug().Str("query_execution_id", id).Int("rows", len(out)).Msg("query results fetched")
	return out, nil
}

var _ Connection = (*AthenaConnection)(nil)
