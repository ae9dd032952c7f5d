package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hbnb-network/hbnb/internal/domain"
)

// ─── Argument Gates ─────────────────────────────────────────────────────────

// resolveClass checks that a class name is present and registered.
func (c *Console) resolveClass(tokens []string) (*domain.Class, error) {
	if len(tokens) < 1 {
		return nil, domain.ErrClassNameMissing
	}
	cls, ok := c.registry.Resolve(tokens[0])
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	return cls, nil
}

// lookup runs the full gate for instance-addressing verbs: class name,
// class registered, id present, key stored.
func (c *Console) lookup(tokens []string) (string, *domain.Instance, error) {
	if _, err := c.resolveClass(tokens); err != nil {
		return "", nil, err
	}
	if len(tokens) < 2 {
		return "", nil, domain.ErrInstanceIDMissing
	}
	key := tokens[0] + "." + tokens[1]
	inst, ok := c.store.All().Get(key)
	if !ok {
		return "", nil, domain.ErrInstanceNotFound
	}
	return key, inst, nil
}

// ─── Handlers ───────────────────────────────────────────────────────────────

func (c *Console) doAll(arg string) (bool, error) {
	tokens, err := Split(arg)
	if err != nil {
		return false, err
	}

	var cls *domain.Class
	if len(tokens) > 0 {
		if cls, err = c.resolveClass(tokens); err != nil {
			return false, err
		}
	}

	var out []string
	for _, inst := range c.store.All().Values() {
		if cls == nil || inst.Class == cls {
			out = append(out, inst.String())
		}
	}
	fmt.Fprintln(c.out, formatList(out))
	return false, nil
}

func (c *Console) doCount(arg string) (bool, error) {
	tokens, err := Split(arg)
	if err != nil {
		return false, err
	}
	cls, err := c.resolveClass(tokens)
	if err != nil {
		return false, err
	}

	n := 0
	for _, inst := range c.store.All().Values() {
		if inst.Class == cls {
			n++
		}
	}
	fmt.Fprintln(c.out, n)
	return false, nil
}

func (c *Console) doCreate(arg string) (bool, error) {
	tokens, err := Split(arg)
	if err != nil {
		return false, err
	}
	cls, err := c.resolveClass(tokens)
	if err != nil {
		return false, err
	}

	inst := cls.Instantiate()
	c.store.New(inst)
	if err := c.store.Save(); err != nil {
		return false, fmt.Errorf("save: %w", err)
	}
	c.logger.Info("created instance", "key", inst.Key())
	fmt.Fprintln(c.out, inst.ID)
	return false, nil
}

func (c *Console) doDestroy(arg string) (bool, error) {
	tokens, err := Split(arg)
	if err != nil {
		return false, err
	}
	key, _, err := c.lookup(tokens)
	if err != nil {
		return false, err
	}

	c.store.All().Delete(key)
	if err := c.store.Save(); err != nil {
		return false, fmt.Errorf("save: %w", err)
	}
	c.logger.Info("destroyed instance", "key", key)
	return false, nil
}

func (c *Console) doShow(arg string) (bool, error) {
	tokens, err := Split(arg)
	if err != nil {
		return false, err
	}
	_, inst, err := c.lookup(tokens)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(c.out, inst.String())
	return false, nil
}

// doUpdate assigns name/value pairs and then runs the instance's own save
// hook rather than a full storage flush. A trailing name without a value
// is dropped.
func (c *Console) doUpdate(arg string) (bool, error) {
	tokens, err := Split(arg)
	if err != nil {
		return false, err
	}
	key, inst, err := c.lookup(tokens)
	if err != nil {
		return false, err
	}
	if len(tokens) < 3 {
		return false, domain.ErrAttrNameMissing
	}
	if len(tokens) < 4 {
		return false, domain.ErrValueMissing
	}

	for i := 2; i+1 < len(tokens); i += 2 {
		name, raw := tokens[i], tokens[i+1]
		if err := inst.Set(name, domain.ParseValue(raw)); err != nil {
			c.logger.Debug("skipping attribute", "key", key, "attr", name, "err", err)
		}
	}
	if err := inst.Save(); err != nil {
		return false, fmt.Errorf("save %s: %w", key, err)
	}
	return false, nil
}

func (c *Console) doQuit(string) (bool, error) {
	if err := c.store.Save(); err != nil {
		return true, fmt.Errorf("save: %w", err)
	}
	return true, nil
}

func (c *Console) doEOF(string) (bool, error) {
	err := c.store.Save()
	fmt.Fprintln(c.out)
	if err != nil {
		return true, fmt.Errorf("save: %w", err)
	}
	return true, nil
}

// formatList renders instance strings as a bracketed list. Items holding
// double quotes but no single quotes are single-quoted to stay readable.
func formatList(items []string) string {
	parts := make([]string, len(items))
	for i, s := range items {
		if strings.Contains(s, `"`) && !strings.ContainsAny(s, `'\`) {
			parts[i] = "'" + s + "'"
		} else {
			parts[i] = strconv.Quote(s)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
