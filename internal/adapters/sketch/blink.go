package sketch

import "fmt"

// Blink renders the canonical LED blink sketch with a configurable pin and
// delay. Useful as a smoke test for a freshly set up board.
func Blink(ledPin, delayMS int) string {
	return fmt.Sprintf(`void setup() {
  pinMode(%d, OUTPUT);
}

void loop() {
  digitalWrite(%d, HIGH);
  delay(%d);
  digitalWrite(%d, LOW);
  delay(%d);
}
`, ledPin, ledPin, delayMS, ledPin, delayMS)
}
