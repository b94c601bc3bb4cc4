package prompts

const (
	// SheetPreamble は生成物の種類を指定する冒頭の指示です。
	SheetPreamble = `Create a "Panoramic Character Depth Deconstruction Sheet" (Concept Art Character Sheet) based on the following details:`

	// VisualGuidelines は全リクエスト共通の構図・画風指定です。
	VisualGuidelines = `VISUAL GUIDELINES:
1. CENTER ANCHOR: A high-quality Full-Body Portrait of the character in the center.
2. BACKGROUND: A technical "Manga Grid/Graph Paper" texture, looking like a designer's sketchbook.
3. SURROUNDING ELEMENTS:
   - Deconstruct the outfit (show layers separately).
   - 3-4 distinct facial expression headshots in the corners.
   - "Exploded" view of their bag contents or inventory items.
   - A detailed close-up of the "Secret/Private Item" (industrial design perspective).
4. ANNOTATIONS: Include handwritten-style notes and guide lines/arrows connecting items to the character.
5. STYLE: High-quality 2D Anime/Game Concept Illustration. Clean, sharp line work.`

	// ResolutionDirective は最低解像度の指示です。
	ResolutionDirective = "Ensure the image is high resolution (1K or higher)."

	// ReferenceInstruction は参照画像が添付されたときだけ送る追加指示です。
	ReferenceInstruction = "Use the attached image as the primary visual reference for the character's design and style."
)
