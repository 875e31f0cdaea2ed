package syncclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// TasksFile is the document whose local completions survive a pull.
const TasksFile = "tasks.json"

type (
	jsonObject = map[string]any
	jsonList   = []any
)

// MergeTasks merges a local and a cloud tasks.json. The cloud document is the
// base: its structure, order and new tasks win. Within planning.tasks, each
// block's tasks (blocks matched by position) and queue, tasks are matched by
// text. A task completed locally stays completed, carrying the local
// completed_at. Local tasks whose text is absent from the cloud list are
// appended. Fields the merge does not know about pass through untouched.
func MergeTasks(local, cloud []byte) ([]byte, error) {
	localDoc, err := decodeObject(local)
	if err != nil {
		return nil, fmt.Errorf("merge tasks: local: %w", err)
	}
	cloudDoc, err := decodeObject(cloud)
	if err != nil {
		return nil, fmt.Errorf("merge tasks: cloud: %w", err)
	}

	planning, ok := cloudDoc["planning"].(jsonObject)
	if !ok {
		return nil, errors.New("merge tasks: cloud document has no planning object")
	}
	cloudPlanning, err := taskList(planning, "tasks", true)
	if err != nil {
		return nil, fmt.Errorf("merge tasks: planning: %w", err)
	}
	localPlanning, err := nestedTaskList(localDoc, "planning")
	if err != nil {
		return nil, fmt.Errorf("merge tasks: local planning: %w", err)
	}
	if planning["tasks"], err = mergeTaskList(localPlanning, cloudPlanning); err != nil {
		return nil, fmt.Errorf("merge tasks: planning: %w", err)
	}

	cloudBlocks, err := taskList(cloudDoc, "blocks", false)
	if err != nil {
		return nil, fmt.Errorf("merge tasks: %w", err)
	}
	localBlocks, err := taskList(localDoc, "blocks", false)
	if err != nil {
		return nil, fmt.Errorf("merge tasks: local: %w", err)
	}
	for i, b := range cloudBlocks {
		block, ok := b.(jsonObject)
		if !ok {
			return nil, fmt.Errorf("merge tasks: block %d is not an object", i)
		}
		cloudTasks, err := taskList(block, "tasks", true)
		if err != nil {
			return nil, fmt.Errorf("merge tasks: block %d: %w", i, err)
		}

		var localTasks jsonList
		if i < len(localBlocks) {
			lb, ok := localBlocks[i].(jsonObject)
			if !ok {
				return nil, fmt.Errorf("merge tasks: local block %d is not an object", i)
			}
			if localTasks, err = taskList(lb, "tasks", false); err != nil {
				return nil, fmt.Errorf("merge tasks: local block %d: %w", i, err)
			}
		}

		if block["tasks"], err = mergeTaskList(localTasks, cloudTasks); err != nil {
			return nil, fmt.Errorf("merge tasks: block %d: %w", i, err)
		}
	}

	cloudQueue, err := taskList(cloudDoc, "queue", false)
	if err != nil {
		return nil, fmt.Errorf("merge tasks: queue: %w", err)
	}
	localQueue, err := taskList(localDoc, "queue", false)
	if err != nil {
		return nil, fmt.Errorf("merge tasks: local queue: %w", err)
	}
	if cloudDoc["queue"], err = mergeTaskList(localQueue, cloudQueue); err != nil {
		return nil, fmt.Errorf("merge tasks: queue: %w", err)
	}

	return encodeIndented(cloudDoc)
}

// mergeTaskList merges two task lists with the cloud list as the base.
func mergeTaskList(local, cloud jsonList) (jsonList, error) {
	localByText := make(map[string]jsonObject, len(local))
	for i, t := range local {
		task, ok := t.(jsonObject)
		if !ok {
			return nil, fmt.Errorf("local task %d is not an object", i)
		}
		if text := taskText(task); text != "" {
			localByText[text] = task
		}
	}

	merged := make(jsonList, 0, len(cloud)+len(local))
	seen := make(map[string]bool, len(cloud))

	for i, t := range cloud {
		task, ok := t.(jsonObject)
		if !ok {
			return nil, fmt.Errorf("task %d is not an object", i)
		}

		text := taskText(task)
		seen[text] = true

		if lt, ok := localByText[text]; ok && truthy(lt["completed"]) && !truthy(task["completed"]) {
			done := make(jsonObject, len(task)+1)
			for k, v := range task {
				done[k] = v
			}
			done["completed"] = true
			done["completed_at"] = lt["completed_at"]
			task = done
		}
		merged = append(merged, task)
	}

	for _, t := range local {
		task := t.(jsonObject)
		if text := taskText(task); text != "" && !seen[text] {
			merged = append(merged, task)
		}
	}

	return merged, nil
}

func taskText(task jsonObject) string {
	s, _ := task["text"].(string)
	return s
}

// truthy follows JSON-ish truthiness: false, null, 0 and "" are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case jsonList:
		return len(x) > 0
	case jsonObject:
		return len(x) > 0
	default:
		return true
	}
}

// taskList returns obj[key] as a JSON array. A missing key is an error only when required.
func taskList(obj jsonObject, key string, required bool) (jsonList, error) {
	v, ok := obj[key]
	if !ok {
		if required {
			return nil, fmt.Errorf("missing %q", key)
		}
		return nil, nil
	}
	list, ok := v.(jsonList)
	if !ok {
		return nil, fmt.Errorf("%q is not a list", key)
	}
	return list, nil
}

// nestedTaskList returns doc[section]["tasks"], or nil when either level is absent.
func nestedTaskList(doc jsonObject, section string) (jsonList, error) {
	v, ok := doc[section]
	if !ok {
		return nil, nil
	}
	obj, ok := v.(jsonObject)
	if !ok {
		return nil, fmt.Errorf("%q is not an object", section)
	}
	return taskList(obj, "tasks", false)
}

func decodeObject(data []byte) (jsonObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj jsonObject
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if obj == nil {
		return nil, errors.New("decode: document is not an object")
	}
	return obj, nil
}

// encodeIndented renders v with two-space indentation and no HTML escaping.
func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
