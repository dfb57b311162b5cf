package browser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// bindingName is the runtime binding the page reports events through.
const bindingName = "__gopickerEmit"

// runtimeObject is the in-page object holding the picker's listeners and helpers.
const runtimeObject = "window.__gopicker"

// overlayID is the id of the instructions overlay element.
const overlayID = "__gopicker-overlay"

// bootstrapScript installs runtimeObject. It is idempotent and survives being
// evaluated on every new document.
var bootstrapScript = fmt.Sprintf(`(() => {
  if (%[1]s) return true;
  const emit = (payload) => {
    try { window.%[2]s(JSON.stringify(payload)); } catch (e) {}
  };
  const stop = (e) => {
    e.preventDefault();
    e.stopPropagation();
    e.stopImmediatePropagation();
  };
  const handlers = {
    block: (e) => { stop(e); return false; },
    pick: (e) => { stop(e); emit({type: e.type, x: e.clientX, y: e.clientY}); },
    key: (e) => { emit({type: e.type, key: e.key}); },
  };
  const installed = {};
  const handles = new Map();
  const outlines = new Map();
  let seq = 0;

  %[1]s = {
    add(l) {
      const h = handlers[l.kind];
      if (!h) throw new Error("unknown listener kind: " + l.kind);
      if (installed[l.kind]) return false;
      l.types.forEach(t => document.addEventListener(t, h, {capture: l.capture, passive: l.passive}));
      installed[l.kind] = l;
      return true;
    },
    remove(l) {
      const cur = installed[l.kind];
      if (!cur) return false;
      cur.types.forEach(t => document.removeEventListener(t, handlers[l.kind], {capture: cur.capture}));
      delete installed[l.kind];
      return true;
    },
    hit(x, y) {
      const el = document.elementFromPoint(x, y);
      if (!el) return null;
      const path = [];
      for (let cur = el; cur && cur !== document.documentElement; cur = cur.parentElement) {
        const parent = cur.parentElement;
        if (!parent) return null;
        path.unshift(Array.prototype.indexOf.call(parent.children, cur));
      }
      const handle = "h" + (++seq);
      handles.set(handle, el);
      return {path, handle};
    },
    snapshot() {
      const overlay = document.getElementById(%[3]q);
      if (overlay) overlay.remove();
      const html = document.documentElement.outerHTML;
      if (overlay) document.body.appendChild(overlay);
      return {html, url: location.href};
    },
    outline(handle, style) {
      const el = handles.get(handle);
      if (!el) return false;
      if (!outlines.has(handle)) outlines.set(handle, el.style.outline);
      el.style.outline = style;
      return true;
    },
    unoutline(handle) {
      const el = handles.get(handle);
      if (!el) return false;
      el.style.outline = outlines.get(handle) || "";
      outlines.delete(handle);
      handles.delete(handle);
      return true;
    },
    overlay(message) {
      let overlay = document.getElementById(%[3]q);
      if (!overlay) {
        overlay = document.createElement("div");
        overlay.id = %[3]q;
        overlay.style.cssText = [
          "position:fixed", "inset:0", "z-index:2147483647",
          "background:rgba(0,0,0,.08)", "cursor:crosshair", "pointer-events:none",
        ].join(";");
        const banner = document.createElement("div");
        banner.style.cssText = [
          "position:absolute", "top:12px", "left:50%%", "transform:translateX(-50%%)",
          "padding:10px 14px", "border-radius:6px", "background:#111827", "color:#f9fafb",
          "font:13px/1.4 system-ui,sans-serif", "white-space:pre-wrap", "max-width:480px",
        ].join(";");
        overlay.appendChild(banner);
        document.body.appendChild(overlay);
      }
      overlay.firstChild.textContent = message;
      return true;
    },
    hideOverlay() {
      const overlay = document.getElementById(%[3]q);
      if (overlay) overlay.remove();
      return true;
    },
  };
  return true;
})()`, runtimeObject, bindingName, overlayID)

// call renders a method call on the in-page runtime with JSON encoded arguments.
func call(method string, args ...any) (string, error) {
	encoded := make([]string, 0, len(args))
	for _, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("failed to encode argument for %s: %w", method, err)
		}
		encoded = append(encoded, string(b))
	}
	return fmt.Sprintf("(%s ? %s.%s(%s) : null)", runtimeObject, runtimeObject, method, strings.Join(encoded, ", ")), nil
}
