package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sheet-cli/internal/model"
)

const snapshotVersion = 1

// SaveInfo summarizes the most recent persisted snapshot.
type SaveInfo struct {
	SavedAt   time.Time `json:"savedAt" yaml:"savedAt"`
	Topics    int       `json:"topics" yaml:"topics"`
	Questions int       `json:"questions" yaml:"questions"`
	Solved    int       `json:"solved" yaml:"solved"`
	Saves     int       `json:"saves" yaml:"saves"`
}

// Save persists a full snapshot, replacing whatever the workspace held.
// Rows carry the position-derived order so Load can rebuild sibling order.
func (s Store) Save(ctx context.Context, t model.Tree) error {
	if t == nil {
		t = model.Tree{}
	}
	if err := checkSubTopicKeys(t); err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Replace-all; sheets are small enough that incremental writes buy nothing.
	for _, table := range []string{"topics", "subtopics", "questions"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	nowMs := now.UnixMilli()

	for ti, tp := range t {
		if _, err := tx.ExecContext(ctx, `INSERT INTO topics(id, ord, title, description, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			tp.ID, ti, tp.Title, tp.Description, nowMs); err != nil {
			return err
		}
		if err := insertQuestions(ctx, tx, tp.ID, "", tp.Questions, nowMs); err != nil {
			return err
		}
		for si, st := range tp.SubTopics {
			if _, err := tx.ExecContext(ctx, `INSERT INTO subtopics(topic_id, id, ord, title, description, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
				tp.ID, st.ID, si, st.Title, st.Description, nowMs); err != nil {
				return err
			}
			if err := insertQuestions(ctx, tx, tp.ID, st.ID, st.Questions, nowMs); err != nil {
				return err
			}
		}
	}

	stats := t.Stats()
	if _, err := tx.ExecContext(ctx, `INSERT INTO saves(saved_at_unixms, topics, questions, solved) VALUES(?, ?, ?, ?)`,
		nowMs, len(t), stats.Total, stats.Solved); err != nil {
		return err
	}
	meta := map[string]string{
		"version":            strconv.Itoa(snapshotVersion),
		"saved_at_unixms":    strconv.FormatInt(nowMs, 10),
		"snapshot_topics":    strconv.Itoa(len(t)),
		"snapshot_questions": strconv.Itoa(stats.Total),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// checkSubTopicKeys rejects sub-topics with an empty id. Direct questions are keyed
// by subtopic_id = "", so such a sub-topic would fold into its topic on Load.
func checkSubTopicKeys(t model.Tree) error {
	for _, tp := range t {
		for si, st := range tp.SubTopics {
			if st.ID == "" {
				return fmt.Errorf("%w: sub-topic at position %d of topic %q has no id", ErrInvalidInput, si, tp.ID)
			}
		}
	}
	return nil
}

func insertQuestions(ctx context.Context, tx *sql.Tx, topicID, subTopicID string, qs []model.Question, nowMs int64) error {
	for qi, q := range qs {
		q.Order = qi
		raw, err := json.Marshal(q)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO questions(topic_id, subtopic_id, id, ord, title, difficulty, solved, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			topicID, subTopicID, q.ID, qi, q.Title, string(q.Difficulty), boolToInt(q.Solved), string(raw), nowMs); err != nil {
			return err
		}
	}
	return nil
}

// HasSnapshot reports whether anything was ever saved to this workspace.
func (s Store) HasSnapshot(ctx context.Context) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()
	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = 'saved_at_unixms'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(v) != "", nil
}

// Load rebuilds the tree from the workspace. An empty workspace yields an empty tree.
func (s Store) Load(ctx context.Context) (model.Tree, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out := model.Tree{}
	topicIdx := map[string]int{}

	rows, err := db.QueryContext(ctx, `SELECT id, title, description FROM topics ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var tp model.Topic
		if err := rows.Scan(&tp.ID, &tp.Title, &tp.Description); err != nil {
			rows.Close()
			return nil, err
		}
		tp.SubTopics = []model.SubTopic{}
		tp.Questions = []model.Question{}
		topicIdx[tp.ID] = len(out)
		out = append(out, tp)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	type stKey struct{ topicID, id string }
	subIdx := map[stKey]int{}
	rows, err = db.QueryContext(ctx, `SELECT topic_id, id, title, description FROM subtopics ORDER BY topic_id, ord`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var topicID string
		var st model.SubTopic
		if err := rows.Scan(&topicID, &st.ID, &st.Title, &st.Description); err != nil {
			rows.Close()
			return nil, err
		}
		ti, ok := topicIdx[topicID]
		if !ok {
			continue
		}
		st.Questions = []model.Question{}
		subIdx[stKey{topicID, st.ID}] = len(out[ti].SubTopics)
		out[ti].SubTopics = append(out[ti].SubTopics, st)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, `SELECT topic_id, subtopic_id, json FROM questions ORDER BY topic_id, subtopic_id, ord`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var topicID, subTopicID, js string
		if err := rows.Scan(&topicID, &subTopicID, &js); err != nil {
			rows.Close()
			return nil, err
		}
		var q model.Question
		if err := json.Unmarshal([]byte(js), &q); err != nil {
			rows.Close()
			return nil, err
		}
		ti, ok := topicIdx[topicID]
		if !ok {
			continue
		}
		if subTopicID == "" {
			out[ti].Questions = append(out[ti].Questions, q)
			continue
		}
		si, ok := subIdx[stKey{topicID, subTopicID}]
		if !ok {
			continue
		}
		out[ti].SubTopics[si].Questions = append(out[ti].SubTopics[si].Questions, q)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	normalizeOrders(out)
	return out, nil
}

// LastSave returns the most recent save summary, ok=false when nothing was saved.
func (s Store) LastSave(ctx context.Context) (SaveInfo, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return SaveInfo{}, false, err
	}
	defer db.Close()

	var info SaveInfo
	var ms int64
	err = db.QueryRowContext(ctx, `SELECT saved_at_unixms, topics, questions, solved FROM saves ORDER BY saved_at_unixms DESC, rowid DESC LIMIT 1`).
		Scan(&ms, &info.Topics, &info.Questions, &info.Solved)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveInfo{}, false, nil
	}
	if err != nil {
		return SaveInfo{}, false, err
	}
	info.SavedAt = time.UnixMilli(ms).UTC()
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM saves`).Scan(&info.Saves); err != nil {
		return SaveInfo{}, false, err
	}
	return info, true, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
