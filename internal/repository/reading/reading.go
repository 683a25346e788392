package readingRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/persistence"
	ports "github.com/hachimada/soothsayer/internal/ports/repository"
)


type readingColumns struct {
	TableName       string
	MessageID       string
	Platform        string
	ChatID          string
	IsTarget        string
	RequiredInfo    string
	Result          string
	ResultVoicePath string
	IsPlayed        string
	CreatedAt       string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns readingColumns
}

// New создаёт новый репозиторий для работы с состояниями гаданий
func New(db persistence.Persistence, log *slog.Logger) ports.IReadingRepo {
	cols := readingColumns{
		TableName:       "reading_states",
		MessageID:       "message_id",
		Platform:        "platform",
		ChatID:          "chat_id",
		IsTarget:        "is_target",
		RequiredInfo:    "required_info",
		Result:          "result",
		ResultVoicePath: "result_voice_path",
		IsPlayed:        "is_played",
		CreatedAt:       "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// readingRow строка таблицы reading_states: анкета хранится как JSONB
type readingRow struct {
	MessageID       string    `db:"message_id"`
	Platform        string    `db:"platform"`
	ChatID          int64     `db:"chat_id"`
	IsTarget        bool      `db:"is_target"`
	RequiredInfo    []byte    `db:"required_info"`
	Result          string    `db:"result"`
	ResultVoicePath string    `db:"result_voice_path"`
	IsPlayed        bool      `db:"is_played"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.MessageID,
		r.columns.Platform,
		r.columns.ChatID,
		r.columns.IsTarget,
		r.columns.RequiredInfo,
		r.columns.Result,
		r.columns.ResultVoicePath,
		r.columns.IsPlayed,
		r.columns.CreatedAt)
}

func toRow(state *domain.ReadingState) (*readingRow, error) {
	info, err := json.Marshal(state.RequiredInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal required_info: %w", err)
	}
	return &readingRow{
		MessageID:       string(state.MessageID),
		Platform:        string(state.Platform),
		ChatID:          state.ChatID,
		IsTarget:        state.IsTarget,
		RequiredInfo:    info,
		Result:          state.Result,
		ResultVoicePath: state.ResultVoicePath,
		IsPlayed:        state.IsPlayed,
		CreatedAt:       state.CreatedAt,
	}, nil
}

func toDomain(row *readingRow) (*domain.ReadingState, error) {
	var info domain.BirthInfo
	if len(row.RequiredInfo) > 0 {
		if err := json.Unmarshal(row.RequiredInfo, &info); err != nil {
			return nil, fmt.Errorf("failed to unmarshal required_info: %w", err)
		}
	}
	return &domain.ReadingState{
		MessageID:       domain.MessageID(row.MessageID),
		Platform:        domain.Platform(row.Platform),
		ChatID:          row.ChatID,
		IsTarget:        row.IsTarget,
		RequiredInfo:    info,
		Result:          row.Result,
		ResultVoicePath: row.ResultVoicePath,
		IsPlayed:        row.IsPlayed,
		CreatedAt:       row.CreatedAt,
	}, nil
}

// Create сохраняет новое состояние гадания
func (r *Repository) Create(ctx context.Context, state *domain.ReadingState) error {
	row, err := toRow(state)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.columns.TableName,
		r.allColumns())
	if err := r.db.Exec(ctx, query,
		row.MessageID,
		row.Platform,
		row.ChatID,
		row.IsTarget,
		row.RequiredInfo,
		row.Result,
		row.ResultVoicePath,
		row.IsPlayed,
		row.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create reading state: %w", err)
	}

	return nil
}

// GetByRef получает состояние по ссылке на исходное сообщение
func (r *Repository) GetByRef(ctx context.Context, ref domain.MessageRef) (*domain.ReadingState, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Platform,
		r.columns.MessageID)

	var row readingRow
	err := r.db.Get(ctx, &row, query, string(ref.Platform), string(ref.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reading state %s: %w", ref, err)
	}

	return toDomain(&row)
}

// Update перезаписывает мутируемые поля состояния (created_at не трогаем)
func (r *Repository) Update(ctx context.Context, state *domain.ReadingState) error {
	row, err := toRow(state)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $7 AND %s = $8`,
		r.columns.TableName,
		r.columns.ChatID,
		r.columns.IsTarget,
		r.columns.RequiredInfo,
		r.columns.Result,
		r.columns.ResultVoicePath,
		r.columns.IsPlayed,
		r.columns.Platform,
		r.columns.MessageID)

	affected, err := r.db.ExecWithResult(ctx, query,
		row.ChatID,
		row.IsTarget,
		row.RequiredInfo,
		row.Result,
		row.ResultVoicePath,
		row.IsPlayed,
		row.Platform,
		row.MessageID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reading state %s: %w", state.Ref(), err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}

	return nil
}

// ListUnprocessed возвращает целевые состояния, для которых гадание ещё не выполнено
func (r *Repository) ListUnprocessed(ctx context.Context, limit int) ([]*domain.ReadingState, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE %s = true AND %s = ''
		ORDER BY %s
		LIMIT $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.IsTarget,
		r.columns.Result,
		r.columns.CreatedAt)

	return r.selectStates(ctx, query, limit)
}

// ListPendingPlayback возвращает состояния с синтезированным голосом, ещё не доставленные
func (r *Repository) ListPendingPlayback(ctx context.Context, limit int) ([]*domain.ReadingState, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE %s = false AND %s <> ''
		ORDER BY %s
		LIMIT $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.IsPlayed,
		r.columns.ResultVoicePath,
		r.columns.CreatedAt)

	return r.selectStates(ctx, query, limit)
}

// ListDeliverablePlayback как ListPendingPlayback, но без состояний с неизвестным
// чатом: их некуда доставлять, и ретраить их бессмысленно
func (r *Repository) ListDeliverablePlayback(ctx context.Context, limit int) ([]*domain.ReadingState, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE %s = false AND %s <> '' AND %s <> 0
		ORDER BY %s
		LIMIT $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.IsPlayed,
		r.columns.ResultVoicePath,
		r.columns.ChatID,
		r.columns.CreatedAt)

	return r.selectStates(ctx, query, limit)
}

// MarkPlayed выставляет флаг is_played после доставки гадания пользователю
func (r *Repository) MarkPlayed(ctx context.Context, ref domain.MessageRef) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = true WHERE %s = $1 AND %s = $2`,
		r.columns.TableName,
		r.columns.IsPlayed,
		r.columns.Platform,
		r.columns.MessageID)

	affected, err := r.db.ExecWithResult(ctx, query, string(ref.Platform), string(ref.ID))
	if err != nil {
		return fmt.Errorf("failed to mark reading state %s as played: %w", ref, err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func (r *Repository) selectStates(ctx context.Context, query string, args ...interface{}) ([]*domain.ReadingState, error) {
	var rows []readingRow
	if err := r.db.Select(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select reading states: %w", err)
	}

	states := make([]*domain.ReadingState, 0, len(rows))
	for i := range rows {
		state, err := toDomain(&rows[i])
		if err != nil {
			// битую строку пропускаем, но логируем - остальные состояния важнее
			r.Log.Error("failed to decode reading state row",
				"error", err,
				"message_id", rows[i].MessageID,
				"platform", rows[i].Platform,
			)
			continue
		}
		states = append(states, state)
	}

	return states, nil
}
